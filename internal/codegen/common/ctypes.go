package common

import (
	"regexp"
	"strings"
)

// Marshalling and API type names shared by the mapper and the C# generator.
const (
	HandleType   = "IntPtr"
	TextType     = "string"
	VarargsType  = "__arglist"
	variadicDecl = "..."
)

var constWord = regexp.MustCompile(`\bconst\b`)

// CType is a raw C declaration fragment ("const char *alias") broken into the
// pieces the binding mappers look at.
type CType struct {
	// Base is the bare type name with pointer stars trimmed ("char").
	Base string
	// Annotation is the first whitespace token carrying a star ("*alias",
	// "char*", "*"). Its length matters for char pointers.
	Annotation string
	PtrDepth   int
	Variadic   bool
}

// ParseCType normalizes a fragment: whole-word "const" is removed and the rest
// split on whitespace.
func ParseCType(fragment string) CType {
	fields := strings.Fields(constWord.ReplaceAllString(fragment, ""))
	if len(fields) == 0 {
		return CType{}
	}
	if len(fields) == 1 && fields[0] == variadicDecl {
		return CType{Base: variadicDecl, Variadic: true}
	}
	ct := CType{Base: strings.Trim(fields[0], "*")}
	for _, f := range fields {
		if strings.Contains(f, "*") {
			ct.Annotation = f
			ct.PtrDepth = strings.Count(f, "*")
			break
		}
	}
	return ct
}

// TypeMapper converts C fragments into marshalling and high-level C# types.
type TypeMapper struct {
	// Prefix marks domain object types, e.g. "Purple".
	Prefix string
	// Primitives maps C type aliases to C# types at pointer depth zero.
	Primitives map[string]string
}

// DefaultPrimitives is the alias table used when none is configured.
func DefaultPrimitives() map[string]string {
	return map[string]string{"gboolean": "bool"}
}

// IsObject reports whether the fragment is a pointer to a domain object.
func (m TypeMapper) IsObject(ct CType) bool {
	return ct.PtrDepth == 1 && len(ct.Base) > len(m.Prefix) && strings.HasPrefix(ct.Base, m.Prefix)
}

// ClassName strips the domain prefix off a prefixed type name.
func (m TypeMapper) ClassName(name string) string {
	return strings.TrimPrefix(name, m.Prefix)
}

// Marshal returns the type used on the native entry point.
//
// A char pointer becomes text only when its annotation token is longer than
// one character ("*alias", "char*"); a bare "*" stays a handle.
func (m TypeMapper) Marshal(ct CType) string {
	if ct.Variadic {
		return VarargsType
	}
	if ct.PtrDepth == 1 {
		if ct.Base == "char" && len(ct.Annotation) > 1 {
			return TextType
		}
		return HandleType
	}
	if ct.PtrDepth == 0 {
		if alias, ok := m.Primitives[ct.Base]; ok {
			return alias
		}
	}
	return ct.Base
}

// HighLevel returns the type exposed on the generated API surface.
func (m TypeMapper) HighLevel(ct CType) string {
	if ct.Variadic {
		return VarargsType
	}
	if m.IsObject(ct) {
		return m.ClassName(ct.Base)
	}
	if ct.Base == "char" && ct.PtrDepth == 1 {
		return TextType
	}
	if alias, ok := m.Primitives[ct.Base]; ok {
		return alias
	}
	return ct.Base
}
