package cmd

import (
	"io"
	"log/slog"

	"github.com/Alia5/monobind/internal/codegen/generator"
	"github.com/Alia5/monobind/internal/log"
)

type Generate struct {
	Output  string         `short:"o" help:"Output directory for generated classes" default:"./api" env:"MONOBIND_OUTPUT"`
	Binding BindingOptions `embed:""`

	Stdin io.Reader `kong:"-"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, trace log.TraceLogger, in Inputs) error {
	logger.Info("Starting binding generation", "output", g.Output, "prefix", g.Binding.Prefix)
	opts := g.Binding.generatorOptions(in)
	opts.Stdin = g.Stdin
	return generator.New(opts, logger, trace).GenerateAll(g.Output)
}
