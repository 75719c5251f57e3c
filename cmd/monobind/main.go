package main

import (
	"os"
	"strings"

	"github.com/Alia5/monobind/internal/codegen/common"
	"github.com/Alia5/monobind/internal/config"
	"github.com/Alia5/monobind/internal/configpaths"
	"github.com/Alia5/monobind/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg, findInputs(os.Args[1:])...)

	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("monobind"),
		kong.Description("C# binding and signal table generator for C library headers"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	trace, traceFile, err := log.OpenTrace(cli.Log.TraceFile)
	if err != nil {
		logger.Error("failed to open trace file", "file", cli.Log.TraceFile, "error", err)
		trace = log.NewTrace(nil)
	} else if traceFile != nil {
		closeFiles = append(closeFiles, traceFile)
	}

	ctx.Bind(logger)
	ctx.BindTo(trace, (*log.TraceLogger)(nil))
	ctx.Bind(cli.Input)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("MONOBIND_CONFIG"); v != "" {
		return v
	}
	return ""
}

// findInputs collects --input/-i values ahead of parsing so configuration
// next to the scanned files can be loaded.
func findInputs(args []string) []string {
	var inputs []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		var v string
		switch {
		case strings.HasPrefix(a, "--input="):
			v = a[len("--input="):]
		case (a == "--input" || a == "-i") && i+1 < len(args):
			i++
			v = args[i]
		case strings.HasPrefix(a, "-i") && len(a) > 2 && !strings.HasPrefix(a, "--"):
			v = a[2:]
		default:
			continue
		}
		inputs = append(inputs, strings.Split(v, ",")...)
	}
	return inputs
}
