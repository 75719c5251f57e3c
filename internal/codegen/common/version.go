package common

import (
	"fmt"
	"strings"
)

// Version is set via ldflags at build time: -ldflags "-X github.com/Alia5/monobind/internal/codegen/common.Version=x.y.z"
var Version = ""

// GetVersion returns the version string that was set at build time via ldflags.
// Returns "0.0.1-dev" if Version is empty (development builds only).
func GetVersion() (string, error) {
	if Version == "" {
		return "0.0.1-dev", nil
	}

	version := strings.TrimPrefix(Version, "v")
	baseVersion := strings.SplitN(version, "-", 2)[0]
	if !strings.Contains(baseVersion, ".") {
		return "", fmt.Errorf("invalid version format: %s (expected x.y.z)", Version)
	}

	return version, nil
}

// FileHeader returns the generated-code banner for a source file, using the
// target language's line comment marker.
func FileHeader(comment string) string {
	version, err := GetVersion()
	if err != nil {
		version = Version
	}
	return fmt.Sprintf("%s Code generated by monobind %s. DO NOT EDIT.\n\n", comment, version)
}
