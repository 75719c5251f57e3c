// Package cdecl tokenizes and parses the small subset of C that binding
// generation cares about: single-line function prototypes and call
// expressions. It is not a C parser; it knows identifiers, literals,
// punctuation and balanced parentheses, nothing more.
package cdecl

import "strings"

// Kind is the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Number
	String
	Char
	Punct
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Char:
		return "char"
	case Punct:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Token is a lexeme with its byte span in the source it was cut from.
type Token struct {
	Kind Kind
	Text string
	Pos  int
	End  int
}

// Is reports whether t is the punctuation or identifier with the given text.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Ident) && t.Text == text
}

// Tokenize splits src into tokens. It never fails: unterminated literals and
// block comments run to the end of the input. Comments are dropped.
func Tokenize(src string) []Token {
	var toks []Token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				return toks
			}
			i += end
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return toks
			}
			i += end + 4
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			toks = append(toks, Token{Kind: Ident, Text: src[start:i], Pos: start, End: i})
		case c >= '0' && c <= '9':
			start := i
			for i < len(src) && (isIdentPart(src[i]) || src[i] == '.') {
				i++
			}
			toks = append(toks, Token{Kind: Number, Text: src[start:i], Pos: start, End: i})
		case c == '"' || c == '\'':
			start := i
			i = skipQuoted(src, i)
			kind := String
			if c == '\'' {
				kind = Char
			}
			toks = append(toks, Token{Kind: kind, Text: src[start:i], Pos: start, End: i})
		case c == '.' && strings.HasPrefix(src[i:], "..."):
			toks = append(toks, Token{Kind: Punct, Text: "...", Pos: i, End: i + 3})
			i += 3
		default:
			toks = append(toks, Token{Kind: Punct, Text: src[i : i+1], Pos: i, End: i + 1})
			i++
		}
	}
	return toks
}

// skipQuoted returns the index just past the literal starting at src[i].
func skipQuoted(src string, i int) int {
	quote := src[i]
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return len(src)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// Balance returns the open-minus-close parenthesis count of src and whether
// any opening parenthesis was seen. Parentheses inside literals and comments
// do not count.
func Balance(src string) (depth int, opened bool) {
	for _, t := range Tokenize(src) {
		if t.Kind != Punct {
			continue
		}
		switch t.Text {
		case "(":
			depth++
			opened = true
		case ")":
			depth--
		}
	}
	return depth, opened
}

// StripLineComment cuts a trailing // comment off a single line. Slashes
// inside literals and /* */ spans are kept.
func StripLineComment(line string) string {
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"' || c == '\'':
			i = skipQuoted(line, i) - 1
		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			end := strings.Index(line[i+2:], "*/")
			if end < 0 {
				return line
			}
			i += end + 3
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i]
		}
	}
	return line
}
