package scanner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/monobind/internal/codegen/common"
	"github.com/Alia5/monobind/internal/codegen/diag"
	"github.com/Alia5/monobind/internal/codegen/meta"
	"github.com/Alia5/monobind/internal/log"
)

const buddyHeader = `#include <glib.h>

struct _PurpleBuddy {
	PurpleBlistNode node;
	char *name;
	char *alias;
};

char* purple_buddy_get_alias(PurpleBuddy *buddy);
void purple_buddy_set_alias(PurpleBuddy *buddy, const char *alias);
PurpleBuddy *purple_buddy_new(PurpleAccount *account, const char *name,
                              const char *alias);
PurpleAccount *purple_buddy_get_account(const PurpleBuddy *buddy);
gboolean purple_group_on_account(PurpleGroup *g, PurpleAccount *account);
`

func testOpts() HeaderOptions {
	return HeaderOptions{Mapper: common.TypeMapper{Prefix: "Purple", Primitives: common.DefaultPrimitives()}}
}

func scanString(t *testing.T, src string) *meta.Metadata {
	t.Helper()
	md := meta.New()
	require.NoError(t, ScanHeader(md, strings.NewReader(src), testOpts()))
	return md
}

func TestScanHeaderRegistersStruct(t *testing.T) {
	md := scanString(t, "struct _PurpleBuddy {\n\tchar *name;\n};\n")
	require.Equal(t, []string{"PurpleBuddy"}, md.Structs.Keys())

	s, _ := md.Structs.Get("PurpleBuddy")
	assert.Equal(t, "Buddy", s.ClassName)
	assert.Equal(t, "purple_buddy", s.FuncPrefix)
	assert.Equal(t, 1, s.Line)
}

func TestScanHeaderIgnoresIndentedAndForeignStructs(t *testing.T) {
	md := scanString(t, "  struct _PurpleBuddy {\nstruct _GList {\nstruct _Purple {\ntypedef struct _PurpleGroup PurpleGroup;\n")
	assert.Equal(t, 0, md.Structs.Len())
}

func TestScanHeaderClassifiesAccessors(t *testing.T) {
	md := scanString(t, buddyHeader)
	assert.Empty(t, md.Diagnostics)

	s, err := md.Lookup("Buddy")
	require.NoError(t, err)

	names := make([]string, len(s.Methods))
	for i, m := range s.Methods {
		names[i] = m.Name
	}
	assert.Equal(t, []string{
		"purple_buddy_get_alias",
		"purple_buddy_set_alias",
		"purple_buddy_new",
		"purple_buddy_get_account",
	}, names)
	assert.Equal(t, []string{"alias", "account"}, s.Properties.Keys())

	alias, _ := s.Properties.Get("alias")
	get := alias.Getter()
	require.NotNil(t, get)
	require.Len(t, get.Args, 1)
	assert.Equal(t, common.HandleType, get.Args[0].Marshal)
	assert.Equal(t, common.TextType, get.Return.Marshal)
	assert.Equal(t, "char*", get.ReturnRaw)

	set := alias.Setter()
	require.NotNil(t, set)
	require.Len(t, set.Args, 2)
	assert.Equal(t, "alias", set.Args[1].Param)
	assert.Equal(t, common.TextType, set.Args[1].Marshal)
	assert.Same(t, get, alias.Getter())

	ctor := s.Methods[2]
	assert.Equal(t, meta.OpNew, ctor.Operation)
	assert.Equal(t, []string{"PurpleAccount *account", "const char *name", "const char *alias"}, ctor.ArgRaws)
	assert.Equal(t, 11, ctor.Line)

	account, _ := s.Properties.Get("account")
	assert.Equal(t, "Account", account.Type())
	assert.True(t, account.Getter().Return.IsObject)
}

func TestScanHeaderOnlyConsidersEarlierStructs(t *testing.T) {
	md := scanString(t, "char *purple_buddy_get_alias(PurpleBuddy *buddy);\nstruct _PurpleBuddy {\n")
	s, _ := md.Structs.Get("PurpleBuddy")
	assert.Empty(t, s.Methods)
}

func TestScanHeaderLongestPrefixOwns(t *testing.T) {
	// purple_account_setting_get_name also matches purple_account_(set)(ting_get_name)
	decl := "const char *purple_account_setting_get_name(PurpleAccountSetting *setting);\n"
	for _, order := range [][]string{
		{"PurpleAccount", "PurpleAccountSetting"},
		{"PurpleAccountSetting", "PurpleAccount"},
	} {
		t.Run(strings.Join(order, ","), func(t *testing.T) {
			src := "struct _" + order[0] + " {\nstruct _" + order[1] + " {\n" + decl
			md := scanString(t, src)
			account, _ := md.Structs.Get("PurpleAccount")
			setting, _ := md.Structs.Get("PurpleAccountSetting")
			assert.Empty(t, account.Methods)
			require.Len(t, setting.Methods, 1)
			assert.Equal(t, meta.OpGet, setting.Methods[0].Operation)
			assert.Equal(t, []string{"name"}, setting.Properties.Keys())
		})
	}

	md := scanString(t, "struct _PurpleAccount {\n"+decl)
	account, _ := md.Structs.Get("PurpleAccount")
	require.Len(t, account.Methods, 1)
	assert.Equal(t, meta.OpSet, account.Methods[0].Operation)
	assert.Equal(t, []string{"ting_get_name"}, account.Properties.Keys())
}

func TestScanHeaderPrefixOverlapWithoutVerb(t *testing.T) {
	src := `struct _PurpleBlist {
struct _PurpleBlistNode {
PurpleBlistNode *purple_blist_node_get_parent(PurpleBlistNode *node);
PurpleBlistNode *purple_blist_get_root(void);
`
	md := scanString(t, src)
	blist, _ := md.Structs.Get("PurpleBlist")
	node, _ := md.Structs.Get("PurpleBlistNode")
	assert.Equal(t, []string{"root"}, blist.Properties.Keys())
	assert.Equal(t, []string{"parent"}, node.Properties.Keys())

	root, _ := blist.Properties.Get("root")
	assert.Empty(t, root.Getter().Args)
}

func TestScanHeaderMalformedDeclaration(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{
			name: "interrupted by empty line",
			src:  "struct _PurpleBuddy {\nvoid purple_buddy_set_alias(PurpleBuddy *buddy,\n\nconst char *alias);\n",
			line: 2,
		},
		{
			name: "truncated input",
			src:  "struct _PurpleBuddy {\nvoid purple_buddy_set_alias(PurpleBuddy *buddy,\n  const char *alias",
			line: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := scanString(t, tt.src)
			require.Len(t, md.Diagnostics, 1)
			d := md.Diagnostics[0]
			assert.ErrorIs(t, d, diag.ErrMalformedDeclaration)
			assert.Equal(t, tt.line, d.Line)
			assert.Equal(t, "purple_buddy_set_alias", d.Subject)

			s, _ := md.Structs.Get("PurpleBuddy")
			assert.Empty(t, s.Methods)
		})
	}
}

func TestScanHeaderSkipsNonPrototypes(t *testing.T) {
	src := `struct _PurpleAccount {
typedef void (*PurpleAccountRegistrationCb)(PurpleAccount *account, gboolean succeeded, void *user_data);
typedef gboolean (*PurpleFilterAccountFunc)(PurpleAccount *account);
static gpointer (*db_thread_func[4])(gpointer data);
const char *purple_account_get_username(const PurpleAccount *account) {
	return account->username;
}
void purple_account_set_username(PurpleAccount *account, const char *username)
char *purple_account_get_alias(PurpleAccount *account);
`
	md := scanString(t, src)
	assert.Empty(t, md.Diagnostics)

	s, _ := md.Structs.Get("PurpleAccount")
	require.Len(t, s.Methods, 1)
	assert.Equal(t, "purple_account_get_alias", s.Methods[0].Name)
}

func TestScanHeaderBlockCommentInArgs(t *testing.T) {
	md := scanString(t, "struct _PurpleBuddy {\nvoid purple_buddy_set_url(PurpleBuddy *b, /* see http://a */ const char *url);\n")
	assert.Empty(t, md.Diagnostics)

	s, _ := md.Structs.Get("PurpleBuddy")
	require.Len(t, s.Methods, 1)
	assert.Equal(t, []string{"PurpleBuddy *b", "const char *url"}, s.Methods[0].ArgRaws)
}

func TestScanHeaderWarnsOnCollisions(t *testing.T) {
	src := `struct _PurpleBuddy {
char* purple_buddy_get_alias(PurpleBuddy *buddy);
const char *purple_buddy_get_alias(PurpleBuddy *buddy);
`
	md := scanString(t, src)
	require.Len(t, md.Diagnostics, 1)
	assert.ErrorIs(t, md.Diagnostics[0], diag.ErrPropertyCollision)
	assert.Equal(t, "Buddy.alias", md.Diagnostics[0].Subject)

	s, _ := md.Structs.Get("PurpleBuddy")
	alias, _ := s.Properties.Get("alias")
	assert.Equal(t, 3, alias.Getter().Line)
}

func TestScanHeaderIdempotent(t *testing.T) {
	once := scanString(t, buddyHeader)
	again := scanString(t, buddyHeader)
	twice := scanString(t, buddyHeader+buddyHeader)

	for _, md := range []*meta.Metadata{again, twice} {
		assert.Equal(t, once.Structs.Keys(), md.Structs.Keys())
		a, _ := once.Structs.Get("PurpleBuddy")
		b, _ := md.Structs.Get("PurpleBuddy")
		assert.Equal(t, a.Properties.Keys(), b.Properties.Keys())
		require.Len(t, b.Methods, len(a.Methods))
		for i := range a.Methods {
			assert.Equal(t, a.Methods[i].Name, b.Methods[i].Name)
		}
	}

	require.NotEmpty(t, twice.Diagnostics)
	assert.ErrorIs(t, twice.Diagnostics[0], diag.ErrDuplicateStruct)
}

func TestHeaderScannerAcrossInputs(t *testing.T) {
	md := meta.New()
	hs := NewHeaderScanner(md, testOpts())
	require.NoError(t, hs.Scan(strings.NewReader("struct _PurpleBuddy {\n")))
	require.NoError(t, hs.Scan(strings.NewReader("char* purple_buddy_get_alias(PurpleBuddy *buddy);\n")))

	s, _ := md.Structs.Get("PurpleBuddy")
	assert.Len(t, s.Methods, 1)
}

func TestScanHeaderTrace(t *testing.T) {
	var buf bytes.Buffer
	opts := testOpts()
	opts.Trace = log.NewTrace(&buf)
	md := meta.New()
	require.NoError(t, ScanHeader(md, strings.NewReader(buddyHeader), opts))

	assert.Contains(t, buf.String(),
		"PurpleBuddy *purple_buddy_new(PurpleAccount *account, const char *name, const char *alias);")
	assert.Equal(t, 5, strings.Count(buf.String(), "\n"))
}
