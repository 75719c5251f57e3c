package cdecl

import (
	"errors"
	"fmt"
)

// ErrUnbalanced is returned when a parenthesized list never closes.
var ErrUnbalanced = errors.New("unbalanced parentheses")

// SyntaxError describes where a parse stopped making sense.
type SyntaxError struct {
	Pos  int
	Want string
	Got  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: expected %s, got %s", e.Pos, e.Want, e.Got)
}

// Arg is one comma-separated argument of a prototype, kept as written.
type Arg struct {
	Raw string
	// Name is the declarator name, empty when the argument is unnamed.
	Name string
}

// Decl is a function prototype: [const] Type [*] name(args);
type Decl struct {
	Const  bool
	Return string
	Name   string
	Args   []Arg
}

// ExprKind classifies a call argument.
type ExprKind int

const (
	ExprOther ExprKind = iota
	ExprIdent
	ExprNumber
	ExprString
	ExprCall
)

// Expr is a call argument. Only calls are broken down further; anything else
// keeps its source text.
type Expr struct {
	Kind ExprKind
	Text string
	// Name is the callee for ExprCall, the identifier for ExprIdent.
	Name string
	Args []*Expr
}

type parser struct {
	src  string
	toks []Token
	pos  int
}

func newParser(src string) *parser {
	return &parser{src: src, toks: Tokenize(src)}
}

func (p *parser) peek() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: EOF, Pos: len(p.src), End: len(p.src)}
	}
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) accept(text string) (Token, bool) {
	if t := p.peek(); t.Is(text) {
		p.pos++
		return t, true
	}
	return Token{}, false
}

func (p *parser) expect(text string) (Token, error) {
	if t, ok := p.accept(text); ok {
		return t, nil
	}
	return Token{}, p.errorf(fmt.Sprintf("%q", text))
}

func (p *parser) expectKind(k Kind) (Token, error) {
	if t := p.peek(); t.Kind == k {
		p.pos++
		return t, nil
	}
	return Token{}, p.errorf(k.String())
}

func (p *parser) errorf(want string) error {
	t := p.peek()
	got := t.Kind.String()
	if t.Kind != EOF {
		got = fmt.Sprintf("%q", t.Text)
	}
	return &SyntaxError{Pos: t.Pos, Want: want, Got: got}
}

// groups consumes a parenthesized list whose "(" was already read and
// returns its depth-0 comma-separated token groups. "()" yields no groups.
func (p *parser) groups() ([][]Token, error) {
	var out [][]Token
	var cur []Token
	depth := 0
	for {
		t := p.next()
		if t.Kind == EOF {
			return nil, ErrUnbalanced
		}
		if t.Kind == Punct {
			switch t.Text {
			case "(":
				depth++
			case ")":
				if depth == 0 {
					if len(cur) > 0 || len(out) > 0 {
						out = append(out, cur)
					}
					return out, nil
				}
				depth--
			case ",":
				if depth == 0 {
					out = append(out, cur)
					cur = nil
					continue
				}
			}
		}
		cur = append(cur, t)
	}
}

func (p *parser) text(group []Token) string {
	if len(group) == 0 {
		return ""
	}
	return p.src[group[0].Pos:group[len(group)-1].End]
}

// LooksLikeDecl reports whether line starts, at column 0, with the shape of a
// function prototype: [const] Type [*] name( with the name directly against
// the parenthesis. Function-pointer typedefs and variables do not qualify.
func LooksLikeDecl(line string) bool {
	if line == "" || !isIdentStart(line[0]) {
		return false
	}
	p := newParser(line)
	p.accept("const")
	if _, err := p.expectKind(Ident); err != nil {
		return false
	}
	p.accept("*")
	name, err := p.expectKind(Ident)
	if err != nil {
		return false
	}
	paren, err := p.expect("(")
	return err == nil && name.End == paren.Pos
}

// ParseDecl parses a joined prototype. The return type is a single
// identifier with at most one pointer star; the argument list may nest
// parentheses. An empty list or a lone "void" yields no arguments.
func ParseDecl(src string) (*Decl, error) {
	p := newParser(src)
	d := &Decl{}
	_, d.Const = p.accept("const")

	ret, err := p.expectKind(Ident)
	if err != nil {
		return nil, err
	}
	end := ret.End
	if star, ok := p.accept("*"); ok {
		end = star.End
	}
	d.Return = src[ret.Pos:end]

	name, err := p.expectKind(Ident)
	if err != nil {
		return nil, err
	}
	d.Name = name.Text

	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	groups, err := p.groups()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}

	if len(groups) == 1 && len(groups[0]) == 1 && groups[0][0].Text == "void" {
		groups = nil
	}
	for _, g := range groups {
		d.Args = append(d.Args, Arg{Raw: p.text(g), Name: declaratorName(g)})
	}
	return d, nil
}

// builtinTypeWords are identifiers that end a type, never a declarator.
var builtinTypeWords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"const": true, "volatile": true, "struct": true, "enum": true, "union": true,
}

func declaratorName(g []Token) string {
	if len(g) < 2 {
		return ""
	}
	last := g[len(g)-1]
	if last.Kind != Ident || builtinTypeWords[last.Text] {
		return ""
	}
	return last.Text
}

// ParseCall parses name(args) with an optional trailing semicolon.
func ParseCall(src string) (*Expr, error) {
	p := newParser(src)
	name, err := p.expectKind(Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	call, err := p.call(name)
	if err != nil {
		return nil, err
	}
	p.accept(";")
	return call, nil
}

func (p *parser) call(name Token) (*Expr, error) {
	groups, err := p.groups()
	if err != nil {
		return nil, err
	}
	closing := p.toks[p.pos-1]
	e := &Expr{Kind: ExprCall, Name: name.Text, Text: p.src[name.Pos:closing.End]}
	for _, g := range groups {
		arg, err := p.expr(g)
		if err != nil {
			return nil, err
		}
		e.Args = append(e.Args, arg)
	}
	return e, nil
}

// expr classifies one argument token group, descending into nested calls.
func (p *parser) expr(g []Token) (*Expr, error) {
	if len(g) == 0 {
		return nil, &SyntaxError{Pos: p.peek().Pos, Want: "expression", Got: "empty argument"}
	}
	text := p.text(g)
	if len(g) == 1 {
		switch g[0].Kind {
		case Ident:
			return &Expr{Kind: ExprIdent, Text: text, Name: text}, nil
		case Number:
			return &Expr{Kind: ExprNumber, Text: text}, nil
		case String:
			return &Expr{Kind: ExprString, Text: text}, nil
		}
	}
	if len(g) >= 3 && g[0].Kind == Ident && g[1].Is("(") && g[len(g)-1].Is(")") {
		sub := &parser{src: p.src, toks: g[2:]}
		groups, err := sub.groups()
		if err == nil && sub.pos == len(sub.toks) {
			e := &Expr{Kind: ExprCall, Name: g[0].Text, Text: text}
			for _, sg := range groups {
				arg, err := sub.expr(sg)
				if err != nil {
					return nil, err
				}
				e.Args = append(e.Args, arg)
			}
			return e, nil
		}
	}
	return &Expr{Kind: ExprOther, Text: text}, nil
}
