package csharp

import (
	"strconv"

	"github.com/Alia5/monobind/internal/codegen/common"
	"github.com/Alia5/monobind/internal/codegen/meta"
)

// Options controls the names that appear in generated sources.
type Options struct {
	// Namespace wraps every generated type, e.g. "Purple".
	Namespace string
	// Library is the native library named in [DllImport].
	Library string
	// BaseClass is the handle-owning class every wrapper derives from.
	BaseClass string
}

func DefaultOptions() Options {
	return Options{Namespace: "Purple", Library: "libpurple", BaseClass: "Object"}
}

func writeFileHeader() string {
	return common.FileHeader("//")
}

// paramName is the C declarator name when known, argN otherwise.
func paramName(a meta.ArgType, i int) string {
	if a.Param == "" {
		return "arg" + strconv.Itoa(i)
	}
	return common.CSharpIdent(a.Param)
}
