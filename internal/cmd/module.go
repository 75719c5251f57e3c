package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/Alia5/monobind/internal/codegen/generator"
	"github.com/Alia5/monobind/internal/log"
)

type Module struct {
	Struct  string         `arg:"" optional:"" help:"Struct to generate, by prefixed name (PurpleBuddy) or class name (Buddy). Lists all structs when omitted."`
	Binding BindingOptions `embed:""`

	Stdout io.Writer `kong:"-"`
	Stdin  io.Reader `kong:"-"`
}

// Run is called by Kong when the module command is executed.
func (m *Module) Run(logger *slog.Logger, trace log.TraceLogger, in Inputs) error {
	opts := m.Binding.generatorOptions(in)
	opts.Stdin = m.Stdin
	gen := generator.New(opts, logger, trace)

	out := m.Stdout
	if out == nil {
		out = os.Stdout
	}

	if m.Struct == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) && out == os.Stdout {
			fmt.Fprintln(os.Stderr, "Pass one of the structs below to generate its class:")
		}
		return gen.ListStructs(out)
	}
	logger.Debug("Generating class", "struct", m.Struct)
	return gen.GenerateModule(out, m.Struct)
}
