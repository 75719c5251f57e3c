package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/monobind/internal/codegen/diag"
	"github.com/Alia5/monobind/internal/log"
	th "github.com/Alia5/monobind/internal/testing"
)

const buddyHeader = `struct _PurpleBuddy {
struct _PurpleGroup {
char* purple_buddy_get_alias(PurpleBuddy *buddy);
void purple_buddy_set_alias(PurpleBuddy *buddy, const char *alias);
`

var (
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
	noTrace = log.NewTrace(nil)
)

func defaultBinding() BindingOptions {
	return BindingOptions{Prefix: "Purple", Library: "libpurple", Namespace: "Purple", BaseClass: "Object"}
}

func TestModuleListsStructs(t *testing.T) {
	var out bytes.Buffer
	m := &Module{Binding: defaultBinding(), Stdin: strings.NewReader(buddyHeader), Stdout: &out}
	require.NoError(t, m.Run(discard, noTrace, nil))
	assert.Equal(t, "PurpleBuddy\nPurpleGroup\n", out.String())
}

func TestModuleRendersClass(t *testing.T) {
	var out bytes.Buffer
	m := &Module{Struct: "Buddy", Binding: defaultBinding(), Stdin: strings.NewReader(buddyHeader), Stdout: &out}
	require.NoError(t, m.Run(discard, noTrace, nil))
	assert.Contains(t, out.String(), "return Util.build_string(purple_buddy_get_alias(Handle));")
	assert.Contains(t, out.String(), "purple_buddy_set_alias(Handle, value);")
}

func TestModuleUnknownStruct(t *testing.T) {
	var out bytes.Buffer
	m := &Module{Struct: "PurpleAccount", Binding: defaultBinding(), Stdin: strings.NewReader(buddyHeader), Stdout: &out}
	err := m.Run(discard, noTrace, nil)
	assert.ErrorIs(t, err, diag.ErrNotFound)
	assert.Contains(t, err.Error(), "PurpleAccount")
}

func TestModuleCustomPrimitives(t *testing.T) {
	var out bytes.Buffer
	b := defaultBinding()
	b.Primitive = map[string]string{"guint": "uint"}
	src := "struct _PurpleBuddy {\nguint purple_buddy_get_idle(PurpleBuddy *buddy);\n"
	m := &Module{Struct: "Buddy", Binding: b, Stdin: strings.NewReader(src), Stdout: &out}
	require.NoError(t, m.Run(discard, noTrace, nil))
	assert.Contains(t, out.String(), "public uint IdleProp")
}

func TestSignalsCommand(t *testing.T) {
	src := `purple_signal_register(handle, "buddy-added", m, NULL, 1, purple_value_new(PURPLE_TYPE_SUBTYPE, PURPLE_SUBTYPE_BLIST_BUDDY));`
	opts := SignalOptions{
		RegisterFunc: "purple_signal_register",
		ValueCtor:    "purple_value_new",
		Marker:       []string{"PURPLE_TYPE_SUBTYPE", "PURPLE_TYPE_BOXED"},
	}

	var out bytes.Buffer
	s := &Signals{Format: "text", Signal: opts, Stdin: strings.NewReader(src), Stdout: &out}
	require.NoError(t, s.Run(discard, noTrace, nil))
	assert.Equal(t, "buddy-added ['NULL', 'PURPLE_SUBTYPE_BLIST_BUDDY']\n", out.String())

	out.Reset()
	s = &Signals{Format: "yaml", Signal: opts, Stdin: strings.NewReader(src), Stdout: &out}
	require.NoError(t, s.Run(discard, noTrace, nil))
	var doc map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc["signal"], 1)
	assert.Equal(t, "buddy-added", doc["signal"][0]["name"])
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	input := th.WriteInput(t, dir, "blist.h", buddyHeader)

	g := &Generate{Output: filepath.Join(dir, "api"), Binding: defaultBinding()}
	require.NoError(t, g.Run(th.Logger(t), noTrace, Inputs{input}))

	for _, name := range []string{"Buddy.cs", "Group.cs", "Object.cs", "Util.cs", "ObjectManager.cs"} {
		assert.FileExists(t, filepath.Join(dir, "api", name))
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	dest := filepath.Join(dir, "module.json")
	c := &ConfigInit{Command: "module", Format: "json", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var root map[string]any
	require.NoError(t, json.Unmarshal(data, &root))
	assert.Equal(t, "Purple", root["prefix"])
	assert.Equal(t, "libpurple", root["library"])
	assert.Equal(t, "Object", root["base_class"])
	assert.Equal(t, map[string]any{"gboolean": "bool"}, root["primitive"])
	assert.NotContains(t, root, "struct")
	assert.NotContains(t, root, "stdout")

	assert.Error(t, c.Run(), "existing file without --force")
	c.Force = true
	assert.NoError(t, c.Run())
}

func TestConfigInitSignalsYAML(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "signals.yaml")
	c := &ConfigInit{Command: "signals", Format: "yml", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var root map[string]any
	require.NoError(t, yaml.Unmarshal(data, &root))
	assert.Equal(t, "text", root["format"])
	assert.Equal(t, "purple_signal_register", root["register_func"])
	assert.Equal(t, []any{"PURPLE_TYPE_SUBTYPE", "PURPLE_TYPE_BOXED"}, root["marker"])
}

func TestConfigInitTOML(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "generate.toml")
	c := &ConfigInit{Command: "generate", Format: "toml", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `output = "./api"`)
	assert.Contains(t, string(data), "[primitive]")
}

func TestConfigInitRejectsUnknownFormat(t *testing.T) {
	c := &ConfigInit{Command: "module", Format: "ini", Output: filepath.Join(t.TempDir(), "x")}
	assert.Error(t, c.Run())
}
