package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"PurpleBuddy":         "purple_buddy",
		"PurpleBlistNode":     "purple_blist_node",
		"PurpleXMLNode":       "purple_xml_node",
		"PurpleAccount":       "purple_account",
		"PurpleConvChatBuddy": "purple_conv_chat_buddy",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToSnakeCase(in), in)
	}
}

func TestToPascalCase(t *testing.T) {
	assert.Equal(t, "Alias", ToPascalCase("alias"))
	assert.Equal(t, "ServerAlias", ToPascalCase("server_alias"))
	assert.Equal(t, "", ToPascalCase(""))
}

func TestCSharpIdent(t *testing.T) {
	assert.Equal(t, "buddy", CSharpIdent("buddy"))
	assert.Equal(t, "@event", CSharpIdent("event"))
	assert.Equal(t, "@string", CSharpIdent("string"))
	assert.Equal(t, "Num2", CSharpIdent("2"))
}

func TestParseCType(t *testing.T) {
	tests := []struct {
		fragment string
		want     CType
	}{
		{"PurpleBuddy *buddy", CType{Base: "PurpleBuddy", Annotation: "*buddy", PtrDepth: 1}},
		{"const char *alias", CType{Base: "char", Annotation: "*alias", PtrDepth: 1}},
		{"char*", CType{Base: "char", Annotation: "char*", PtrDepth: 1}},
		{"char *", CType{Base: "char", Annotation: "*", PtrDepth: 1}},
		{"char **argv", CType{Base: "char", Annotation: "**argv", PtrDepth: 2}},
		{"gboolean", CType{Base: "gboolean"}},
		{"constant", CType{Base: "constant"}},
		{"...", CType{Base: "...", Variadic: true}},
		{"", CType{}},
	}
	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCType(tt.fragment))
		})
	}
}

func TestTypeMapper(t *testing.T) {
	m := TypeMapper{Prefix: "Purple", Primitives: DefaultPrimitives()}

	tests := []struct {
		fragment  string
		marshal   string
		highLevel string
		isObject  bool
	}{
		{"PurpleBuddy *buddy", "IntPtr", "Buddy", true},
		{"const PurpleAccount *account", "IntPtr", "Account", true},
		{"const char *alias", "string", "string", false},
		{"char*", "string", "string", false},
		{"char *", "IntPtr", "string", false},
		{"gboolean", "bool", "bool", false},
		{"gboolean *out", "IntPtr", "bool", false},
		{"int", "int", "int", false},
		{"void", "void", "void", false},
		{"GList *list", "IntPtr", "GList", false},
		{"PurpleBuddy buddy", "PurpleBuddy", "PurpleBuddy", false},
		{"Purple *p", "IntPtr", "Purple", false},
		{"char **argv", "char", "char", false},
		{"...", "__arglist", "__arglist", false},
	}
	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			ct := ParseCType(tt.fragment)
			assert.Equal(t, tt.marshal, m.Marshal(ct), "marshal")
			assert.Equal(t, tt.highLevel, m.HighLevel(ct), "high level")
			assert.Equal(t, tt.isObject, m.IsObject(ct), "is object")
		})
	}
}

func TestFileHeader(t *testing.T) {
	assert.Equal(t, "// Code generated by monobind 0.0.1-dev. DO NOT EDIT.\n\n", FileHeader("//"))
}
