package generator

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/monobind/internal/codegen/common"
	"github.com/Alia5/monobind/internal/codegen/diag"
	"github.com/Alia5/monobind/internal/codegen/generator/csharp"
	"github.com/Alia5/monobind/internal/codegen/meta"
	"github.com/Alia5/monobind/internal/codegen/scanner"
	"github.com/Alia5/monobind/internal/log"
)

// Options configures one generator run.
type Options struct {
	// Inputs are header or source files, scanned in order. Stdin is read
	// when the list is empty.
	Inputs  []string
	Stdin   io.Reader
	Mapper  common.TypeMapper
	CSharp  csharp.Options
	Signals scanner.SignalOptions
}

// Generator ties the scanners to the emitters. A Generator owns the
// Metadata of each scan it performs; nothing is shared between runs.
type Generator struct {
	opts   Options
	logger *slog.Logger
	trace  log.TraceLogger
}

func New(opts Options, logger *slog.Logger, trace log.TraceLogger) *Generator {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if trace == nil {
		trace = log.NewTrace(nil)
	}
	return &Generator{opts: opts, logger: logger, trace: trace}
}

// eachInput calls fn for every configured input in order.
func (g *Generator) eachInput(fn func(name string, r io.Reader) error) error {
	if len(g.opts.Inputs) == 0 {
		return fn("<stdin>", g.opts.Stdin)
	}
	for _, path := range g.opts.Inputs {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		err = fn(path, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// ScanHeaders registers structs and classifies functions from all inputs.
func (g *Generator) ScanHeaders() (*meta.Metadata, error) {
	md := meta.New()
	hs := scanner.NewHeaderScanner(md, scanner.HeaderOptions{
		Mapper: g.opts.Mapper,
		Trace:  g.trace,
		Logger: g.logger,
	})
	err := g.eachInput(func(name string, r io.Reader) error {
		g.logger.Debug("Scanning header", "input", name)
		return hs.Scan(r)
	})
	if err != nil {
		return nil, err
	}
	g.report(md)
	g.logger.Info("Found structs", "count", md.Structs.Len())
	return md, nil
}

// ScanSignals extracts signal registrations from all inputs.
func (g *Generator) ScanSignals() (*meta.Metadata, error) {
	md := meta.New()
	opts := g.opts.Signals
	opts.Trace = g.trace
	opts.Logger = g.logger
	err := g.eachInput(func(name string, r io.Reader) error {
		g.logger.Debug("Scanning signals", "input", name)
		return scanner.ScanSignals(md, r, opts)
	})
	if err != nil {
		return nil, err
	}
	g.report(md)
	g.logger.Info("Found signals", "count", md.Signals.Len())
	return md, nil
}

func (g *Generator) report(md *meta.Metadata) {
	for _, d := range md.Diagnostics {
		attrs := []any{"kind", d.Kind, "line", d.Line, "subject", d.Subject, "detail", d.Detail}
		if d.Severity == diag.SeverityError {
			g.logger.Error("Scan error", attrs...)
			continue
		}
		g.logger.Warn("Scan warning", attrs...)
	}
}

// ListStructs writes every discovered struct name, one per line.
func (g *Generator) ListStructs(w io.Writer) error {
	md, err := g.ScanHeaders()
	if err != nil {
		return err
	}
	for _, name := range md.Structs.Keys() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// GenerateModule writes the class for one struct, named by its prefixed
// name or its class name. An unknown name yields a diag.ErrNotFound error.
func (g *Generator) GenerateModule(w io.Writer, name string) error {
	md, err := g.ScanHeaders()
	if err != nil {
		return err
	}
	s, err := md.Lookup(name)
	if err != nil {
		return err
	}
	return csharp.RenderClass(w, s, g.opts.CSharp)
}

// GenerateAll writes every class and the runtime support files.
func (g *Generator) GenerateAll(outputDir string) error {
	md, err := g.ScanHeaders()
	if err != nil {
		return err
	}
	return csharp.Generate(g.logger, outputDir, md, g.opts.CSharp)
}

// Signals scans for signals and writes them in the given format.
func (g *Generator) Signals(w io.Writer, format string) error {
	md, err := g.ScanSignals()
	if err != nil {
		return err
	}
	return WriteSignals(w, md.Signals.Values(), format)
}
