package scanner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/Alia5/monobind/internal/codegen/cdecl"
	"github.com/Alia5/monobind/internal/codegen/diag"
	"github.com/Alia5/monobind/internal/codegen/meta"
	"github.com/Alia5/monobind/internal/log"
)

// SignalOptions names the calls the signal extractor looks for.
type SignalOptions struct {
	// RegisterFunc is the registration call, e.g. purple_signal_register.
	RegisterFunc string
	// ValueCtor is the value-descriptor constructor, e.g. purple_value_new.
	ValueCtor string
	// Markers are leading value-constructor arguments that only qualify the
	// type token that follows them.
	Markers []string

	Trace  log.TraceLogger
	Logger *slog.Logger
}

// DefaultSignalOptions returns the libpurple names.
func DefaultSignalOptions() SignalOptions {
	return SignalOptions{
		RegisterFunc: "purple_signal_register",
		ValueCtor:    "purple_value_new",
		Markers:      []string{"PURPLE_TYPE_SUBTYPE", "PURPLE_TYPE_BOXED"},
	}
}

// registration argument positions: instance, name, marshaller, return, count
const (
	argName = 1
	argRet  = 3
	argN    = 4
	argVals = 5
)

// subtypeMarker in a return-type constructor means the real type follows.
const subtypeMarker = "PURPLE_TYPE_SUBTYPE"

type bufferedCall struct {
	line int
	text string
}

// errSkip marks buffered text that is not a registration call at all.
var errSkip = errors.New("not a registration call")

// ScanSignals extracts signal registrations from r into md.Signals.
//
// The first pass buffers every logical call starting on a line that
// mentions the registration function; the second pass parses each buffer.
func ScanSignals(md *meta.Metadata, r io.Reader, opts SignalOptions) error {
	if opts.Trace == nil {
		opts.Trace = log.NewTrace(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	calls, err := bufferCalls(md, r, opts)
	if err != nil {
		return err
	}

	for _, c := range calls {
		sig, err := parseRegistration(c, opts)
		switch {
		case errors.Is(err, errSkip):
			opts.Logger.Debug("Skipping non-registration text", "line", c.line)
			continue
		case err != nil:
			var d *diag.Error
			if errors.As(err, &d) {
				md.Report(d)
			} else {
				md.Report(diag.MalformedCall(c.line, "", err.Error()))
			}
			continue
		}
		if md.Signals.Set(sig.Name, sig) {
			md.Report(diag.DuplicateSignal(c.line, sig.Name))
		}
		opts.Logger.Debug("Found signal", "name", sig.Name, "types", sig.Types)
	}
	return nil
}

func bufferCalls(md *meta.Metadata, r io.Reader, opts SignalOptions) ([]bufferedCall, error) {
	var calls []bufferedCall
	lr := cdecl.NewLineReader(r)
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		if !strings.Contains(line, opts.RegisterFunc) {
			continue
		}
		start := lr.Line()
		joined, err := cdecl.JoinCall(line, lr)
		opts.Trace.Log("call", start, joined)
		if err != nil {
			md.Report(diag.MalformedCall(start, "", err.Error()))
			break
		}
		calls = append(calls, bufferedCall{line: start, text: joined})
	}
	if err := lr.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signals: %w", err)
	}
	return calls, nil
}

func parseRegistration(c bufferedCall, opts SignalOptions) (*meta.Signal, error) {
	toks := cdecl.Tokenize(c.text)
	if len(toks) < 2 || !toks[0].Is(opts.RegisterFunc) || !toks[1].Is("(") {
		return nil, errSkip
	}
	call, err := cdecl.ParseCall(c.text)
	if err != nil {
		return nil, diag.MalformedCall(c.line, "", err.Error())
	}
	if len(call.Args) < argVals {
		return nil, diag.MalformedCall(c.line, "", fmt.Sprintf("expected at least %d arguments, got %d", argVals, len(call.Args)))
	}

	nameArg := call.Args[argName]
	if nameArg.Kind != cdecl.ExprString {
		return nil, diag.MalformedCall(c.line, "", "signal name is not a string literal: "+nameArg.Text)
	}
	name, err := strconv.Unquote(nameArg.Text)
	if err != nil {
		name = strings.Trim(nameArg.Text, `"`)
	}

	ret, err := returnType(call.Args[argRet], opts)
	if err != nil {
		return nil, diag.MalformedCall(c.line, name, err.Error())
	}

	countArg := call.Args[argN]
	count, err := strconv.Atoi(countArg.Text)
	if countArg.Kind != cdecl.ExprNumber || err != nil || count < 0 {
		return nil, diag.MalformedCall(c.line, name, "value count is not a number: "+countArg.Text)
	}

	values := call.Args[argVals:]
	if len(values) != count {
		return nil, diag.ArityMismatch(c.line, name, count, len(values))
	}

	types := make([]string, 0, count+1)
	types = append(types, ret)
	for i := 0; i < count; i++ {
		t, err := valueType(values[i], opts)
		if err != nil {
			return nil, diag.MalformedCall(c.line, name, fmt.Sprintf("value %d: %v", i+1, err))
		}
		types = append(types, t)
	}
	return &meta.Signal{Name: name, Types: types, Line: c.line}, nil
}

// returnType accepts an identifier (usually NULL) or a value constructor.
func returnType(e *cdecl.Expr, opts SignalOptions) (string, error) {
	switch e.Kind {
	case cdecl.ExprIdent:
		return e.Name, nil
	case cdecl.ExprCall:
		if e.Name != opts.ValueCtor {
			return "", fmt.Errorf("return type: unexpected call %s", e.Name)
		}
		if len(e.Args) == 0 {
			return "", fmt.Errorf("return type: empty %s()", e.Name)
		}
		if e.Args[0].Text == subtypeMarker && len(e.Args) > 1 {
			return e.Args[1].Text, nil
		}
		return e.Args[0].Text, nil
	}
	return "", fmt.Errorf("return type: unexpected %q", e.Text)
}

// valueType reduces purple_value_new([MARKER,] T...) to "T...".
func valueType(e *cdecl.Expr, opts SignalOptions) (string, error) {
	if e.Kind != cdecl.ExprCall || e.Name != opts.ValueCtor {
		return "", fmt.Errorf("expected %s(...), got %q", opts.ValueCtor, e.Text)
	}
	args := e.Args
	if len(args) > 0 && slices.Contains(opts.Markers, args[0].Text) {
		args = args[1:]
	}
	if len(args) == 0 {
		return "", fmt.Errorf("no type in %q", e.Text)
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Text
	}
	return strings.Join(parts, ", "), nil
}
