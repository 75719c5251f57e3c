// Package config holds the command line and configuration file schema.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/monobind/internal/cmd"
)

// Log configures logging for every command.
type Log struct {
	Level     string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"MONOBIND_LOG_LEVEL"`
	File      string `help:"Also write logs to this file" env:"MONOBIND_LOG_FILE"`
	TraceFile string `help:"Write every joined declaration and call to this file" env:"MONOBIND_LOG_TRACE_FILE"`
}

type CLI struct {
	Version    kong.VersionFlag `help:"Print version and exit"`
	ConfigFile string           `name:"config" help:"Configuration file (json, yaml or toml)" env:"MONOBIND_CONFIG"`
	Log        Log              `embed:"" prefix:"log."`
	Input      cmd.Inputs       `short:"i" help:"Input files, scanned in order. Reads stdin when omitted."`

	Module   cmd.Module        `cmd:"" help:"List structs, or generate the class for one struct on stdout"`
	Signals  cmd.Signals       `cmd:"" help:"Extract signal registrations"`
	Generate cmd.Generate      `cmd:"" help:"Generate classes for all structs plus runtime support files"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
