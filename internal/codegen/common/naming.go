package common

import (
	"strings"
	"unicode"
)

func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	var result strings.Builder
	for _, word := range words {
		if len(word) > 0 {
			result.WriteString(strings.ToUpper(string(word[0])))
			if len(word) > 1 {
				result.WriteString(strings.ToLower(word[1:]))
			}
		}
	}

	return result.String()
}

// ToSnakeCase turns a C type name into the prefix its functions use,
// e.g. "PurpleBuddy" -> "purple_buddy", "PurpleXMLNode" -> "purple_xml_node".
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			// "someWord" -> "some_word"
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			// "XMLParser" -> "xml_parser", not "x_m_l_parser"
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// SanitizeLeadingDigit prefixes names that start with a digit with "Num"
// to keep identifiers valid in target languages.
func SanitizeLeadingDigit(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "Num" + name
	}
	return name
}

var csharpKeywords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true, "default": true,
	"delegate": true, "do": true, "double": true, "else": true, "enum": true,
	"event": true, "explicit": true, "extern": true, "false": true, "finally": true,
	"fixed": true, "float": true, "for": true, "foreach": true, "goto": true,
	"if": true, "implicit": true, "in": true, "int": true, "interface": true,
	"internal": true, "is": true, "lock": true, "long": true, "namespace": true,
	"new": true, "null": true, "object": true, "operator": true, "out": true,
	"override": true, "params": true, "private": true, "protected": true, "public": true,
	"readonly": true, "ref": true, "return": true, "sbyte": true, "sealed": true,
	"short": true, "sizeof": true, "stackalloc": true, "static": true, "string": true,
	"struct": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "uint": true, "ulong": true, "unchecked": true,
	"unsafe": true, "ushort": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true,
}

// CSharpIdent makes name usable as a C# identifier.
func CSharpIdent(name string) string {
	name = SanitizeLeadingDigit(name)
	if csharpKeywords[name] {
		return "@" + name
	}
	return name
}
