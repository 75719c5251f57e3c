package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/monobind/internal/cmd"
)

func parse(t *testing.T, args []string, options ...kong.Option) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	options = append([]kong.Option{kong.Name("monobind"), kong.Exit(func(int) { t.Fatal("unexpected exit") })}, options...)
	parser, err := kong.New(&cli, options...)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestDefaults(t *testing.T) {
	cli, ctx := parse(t, []string{"module"})
	assert.Equal(t, "module", ctx.Command())
	assert.Equal(t, "info", cli.Log.Level)
	assert.Empty(t, cli.Input)
	assert.Equal(t, "Purple", cli.Module.Binding.Prefix)
	assert.Equal(t, "libpurple", cli.Module.Binding.Library)
	assert.Equal(t, map[string]string{"gboolean": "bool"}, cli.Module.Binding.Primitive)
}

func TestFlags(t *testing.T) {
	cli, ctx := parse(t, []string{"-i", "blist.h", "-i", "blist.c", "--log.level", "debug", "module", "Buddy", "--prefix", "Gaim"})
	assert.Equal(t, "module <struct>", ctx.Command())
	assert.Equal(t, cmd.Inputs{"blist.h", "blist.c"}, cli.Input)
	assert.Equal(t, "debug", cli.Log.Level)
	assert.Equal(t, "Buddy", cli.Module.Struct)
	assert.Equal(t, "Gaim", cli.Module.Binding.Prefix)
}

func TestSignalDefaults(t *testing.T) {
	cli, _ := parse(t, []string{"signals", "--format", "json"})
	assert.Equal(t, "json", cli.Signals.Format)
	assert.Equal(t, "purple_signal_register", cli.Signals.Signal.RegisterFunc)
	assert.Equal(t, []string{"PURPLE_TYPE_SUBTYPE", "PURPLE_TYPE_BOXED"}, cli.Signals.Signal.Marker)
}

func TestConfigurationFiles(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "module.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"library": "libgaim", "log": {"level": "warn"}}`), 0o644))
	yamlPath := filepath.Join(dir, "module.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("namespace: Gaim\n"), 0o644))

	cli, _ := parse(t, []string{"module", "--prefix", "Gaim"},
		kong.Configuration(kong.JSON, jsonPath),
		kong.Configuration(kongyaml.Loader, yamlPath),
	)
	assert.Equal(t, "Gaim", cli.Module.Binding.Prefix)
	assert.Equal(t, "libgaim", cli.Module.Binding.Library)
	assert.Equal(t, "Gaim", cli.Module.Binding.Namespace)
	assert.Equal(t, "warn", cli.Log.Level)
}
