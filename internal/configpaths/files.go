package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const systemConfigDir = "/etc/monobind"

// DefaultConfigDir returns the platform-specific configuration directory for monobind.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, "monobind"), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "monobind"), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "monobind"), nil
		}
		return "", errors.New("HOME not set")
	}
}

// DefaultNamedConfigPath returns the default config file path for the given format and base name (e.g., "module").
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	ext := "json"
	switch format {
	case "yaml", "yml":
		ext = "yaml"
	case "toml":
		ext = "toml"
	}
	return filepath.Join(dir, baseName+"."+ext), nil
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0o755)
}

// projectBase is the file name looked up next to the scanned inputs, so a
// source tree can carry its own prefix and signal names.
const projectBase = "monobind"

// ConfigCandidatePaths builds candidate paths for config files per format.
// If userPath is provided, it is prioritized and routed to the matching loader by extension.
// A monobind.* file in the directory of any input follows, then the working
// directory, the config home and the system directory.
func ConfigCandidatePaths(userPath string, inputs ...string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch ext := filepath.Ext(userPath); ext {
		case ".json":
			add(&jsonPaths, userPath)
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	for _, dir := range InputDirs(inputs) {
		add(&jsonPaths, filepath.Join(dir, projectBase+".json"))
		add(&yamlPaths, filepath.Join(dir, projectBase+".yaml"))
		add(&yamlPaths, filepath.Join(dir, projectBase+".yml"))
		add(&tomlPaths, filepath.Join(dir, projectBase+".toml"))
	}

	// Working directory candidates
	wd, _ := os.Getwd()
	for _, base := range []string{projectBase, "config", "module", "signals", "generate"} {
		add(&jsonPaths, filepath.Join(wd, base+".json"))
		add(&yamlPaths, filepath.Join(wd, base+".yaml"))
		add(&yamlPaths, filepath.Join(wd, base+".yml"))
		add(&tomlPaths, filepath.Join(wd, base+".toml"))
	}

	// Config home
	if dir, err := DefaultConfigDir(); err == nil {
		for _, base := range []string{"config", "module", "signals", "generate"} {
			add(&jsonPaths, filepath.Join(dir, base+".json"))
			add(&yamlPaths, filepath.Join(dir, base+".yaml"))
			add(&yamlPaths, filepath.Join(dir, base+".yml"))
			add(&tomlPaths, filepath.Join(dir, base+".toml"))
		}
	}

	// System-wide (unix)
	if runtime.GOOS != "windows" {
		for _, base := range []string{"config", "module", "signals", "generate"} {
			add(&jsonPaths, filepath.Join(systemConfigDir, base+".json"))
			add(&yamlPaths, filepath.Join(systemConfigDir, base+".yaml"))
			add(&yamlPaths, filepath.Join(systemConfigDir, base+".yml"))
			add(&tomlPaths, filepath.Join(systemConfigDir, base+".toml"))
		}
	}

	return
}

// InputDirs returns the distinct directories of the given input files in
// first-seen order. Stdin ("-") and the working directory are left out.
func InputDirs(inputs []string) []string {
	wd, _ := os.Getwd()
	seen := map[string]bool{}
	var dirs []string
	for _, in := range inputs {
		if in == "" || in == "-" {
			continue
		}
		dir, err := filepath.Abs(filepath.Dir(in))
		if err != nil || dir == wd || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}
