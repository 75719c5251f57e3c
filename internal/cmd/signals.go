package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/monobind/internal/codegen/generator"
	"github.com/Alia5/monobind/internal/log"
)

type Signals struct {
	Format string        `help:"Output format" enum:"text,json,yaml,toml" default:"text" env:"MONOBIND_SIGNALS_FORMAT"`
	Signal SignalOptions `embed:""`

	Stdout io.Writer `kong:"-"`
	Stdin  io.Reader `kong:"-"`
}

// Run is called by Kong when the signals command is executed.
func (s *Signals) Run(logger *slog.Logger, trace log.TraceLogger, in Inputs) error {
	opts := s.Signal.generatorOptions(in)
	opts.Stdin = s.Stdin
	out := s.Stdout
	if out == nil {
		out = os.Stdout
	}
	return generator.New(opts, logger, trace).Signals(out, s.Format)
}
