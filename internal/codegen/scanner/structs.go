package scanner

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Alia5/monobind/internal/codegen/cdecl"
	"github.com/Alia5/monobind/internal/codegen/common"
	"github.com/Alia5/monobind/internal/codegen/diag"
	"github.com/Alia5/monobind/internal/codegen/meta"
	"github.com/Alia5/monobind/internal/log"
)

// HeaderOptions configures a header scan.
type HeaderOptions struct {
	Mapper common.TypeMapper
	// Trace receives every joined declaration. Optional.
	Trace log.TraceLogger
	// Logger receives debug output about skipped lines. Optional.
	Logger *slog.Logger
}

// owner is a registered struct together with the grammar that claims its
// functions: ^<func_prefix>_(get|set|new|on)(.*)$
type owner struct {
	s       *meta.Struct
	grammar *regexp.Regexp
}

// HeaderScanner registers structs and classifies function prototypes into
// a Metadata. Several inputs may be fed to one scanner; structs registered
// by an earlier input can own functions of a later one.
type HeaderScanner struct {
	md       *meta.Metadata
	opts     HeaderOptions
	structRe *regexp.Regexp
	owners   []*owner
	index    map[string]int
}

func NewHeaderScanner(md *meta.Metadata, opts HeaderOptions) *HeaderScanner {
	if opts.Trace == nil {
		opts.Trace = log.NewTrace(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HeaderScanner{
		md:       md,
		opts:     opts,
		structRe: regexp.MustCompile(`^struct _(` + regexp.QuoteMeta(opts.Mapper.Prefix) + `[A-Za-z]+)`),
		index:    make(map[string]int),
	}
}

// ScanHeader is a convenience wrapper scanning a single input into md.
func ScanHeader(md *meta.Metadata, r io.Reader, opts HeaderOptions) error {
	return NewHeaderScanner(md, opts).Scan(r)
}

// Scan processes r line by line. Only read errors are returned. Declarations
// whose parentheses never balance are reported to the Metadata; balanced
// text that is not a prototype (definitions, function pointers) is skipped.
func (hs *HeaderScanner) Scan(r io.Reader) error {
	lr := cdecl.NewLineReader(r)
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		if m := hs.structRe.FindStringSubmatch(line); m != nil {
			hs.register(m[1], lr.Line())
			continue
		}
		if !cdecl.LooksLikeDecl(line) {
			continue
		}
		start := lr.Line()
		joined, err := cdecl.JoinDeclaration(line, lr)
		hs.opts.Trace.Log("decl", start, joined)
		if err != nil {
			hs.md.Report(diag.MalformedDeclaration(start, declName(joined), err.Error()))
			continue
		}
		decl, err := cdecl.ParseDecl(joined)
		if err != nil {
			hs.opts.Logger.Debug("Skipping non-prototype", "line", start, "name", declName(joined), "error", err)
			continue
		}
		hs.classify(decl, start)
	}
	if err := lr.Err(); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	return nil
}

func (hs *HeaderScanner) register(name string, line int) {
	className := hs.opts.Mapper.ClassName(name)
	for _, o := range hs.owners {
		if o.s.ClassName == className && o.s.Name != name {
			hs.md.Report(diag.DuplicateStruct(line, className))
		}
	}

	s := meta.NewStruct(name, className, line)
	o := &owner{
		s:       s,
		grammar: regexp.MustCompile(`^` + regexp.QuoteMeta(s.FuncPrefix) + `_(get|set|new|on)(.*)$`),
	}
	if hs.md.Structs.Set(name, s) {
		hs.md.Report(diag.DuplicateStruct(line, name))
	}
	if i, ok := hs.index[name]; ok {
		hs.owners[i] = o
		return
	}
	hs.index[name] = len(hs.owners)
	hs.owners = append(hs.owners, o)
	hs.opts.Logger.Debug("Registered struct", "name", name, "class", className, "line", line)
}

// classify hands decl to the struct with the longest matching function
// prefix; the earliest registered struct wins a tie.
func (hs *HeaderScanner) classify(decl *cdecl.Decl, line int) {
	var (
		best  *owner
		match []string
	)
	for _, o := range hs.owners {
		m := o.grammar.FindStringSubmatch(decl.Name)
		if m == nil {
			continue
		}
		if best == nil || len(o.s.FuncPrefix) > len(best.s.FuncPrefix) {
			best, match = o, m
		}
	}
	if best == nil {
		hs.opts.Logger.Debug("No owner for function", "name", decl.Name, "line", line)
		return
	}

	op := meta.Operation(match[1])
	retRaw := decl.Return
	if decl.Const {
		retRaw = "const " + retRaw
	}
	argRaws := make([]string, len(decl.Args))
	argNames := make([]string, len(decl.Args))
	for i, a := range decl.Args {
		argRaws[i] = a.Raw
		argNames[i] = a.Name
	}
	meth := meta.NewMethod(hs.opts.Mapper, op, retRaw, decl.Name, argRaws, argNames, line)
	if prop := best.s.AddMethod(meth, match[2]); prop != nil {
		hs.md.Report(diag.PropertyCollision(line, best.s.ClassName+"."+prop.Name, string(op)))
	}
}

// declName extracts a best-effort function name for diagnostics.
func declName(joined string) string {
	if i := strings.IndexByte(joined, '('); i > 0 {
		fields := strings.Fields(strings.ReplaceAll(joined[:i], "*", " "))
		if len(fields) > 0 {
			return fields[len(fields)-1]
		}
	}
	return joined
}
