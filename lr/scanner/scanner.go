/*
Package scanner defines an interface for scanners to be used with the parser
driver, and provides a default implementation based on ordered regular expressions.

A scanner is configured by an ordered list of lexical classes, each consisting of
a token type label and a regular expression. At every position of the input, the
classes are tried in order of declaration and the first match wins. Matching
is positional, not longest-match: an earlier class shadows a later one, even if
the later one would match more input.

	lexer, err := scanner.NewLexer([]scanner.Class{
		{Type: "kw", Pattern: `if|else`},
		{Type: "id", Pattern: `[a-zA-Z]+`},
		{Type: "", Pattern: `\s+`},          // empty type: skip
	})
	tokens := lexer.Tokenize("if x")
	for tokens.Next() {
		fmt.Println(tokens.Token())
	}
	if err := tokens.Err(); err != nil { … }

An alternative implementation based on lexmachine lives in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/lrc"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrc.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrc.scanner")
}

// TokenStream is a lazy, single-pass sequence of tokens. Clients call Next
// to advance to the next token, which is then available by Token. The last token
// of every stream not ending in an error is the end-of-input token.
// After Next returned false, Err reports the error which stopped the
// stream, if any.
type TokenStream interface {
	Next() bool
	Token() lrc.Token
	Err() error
}

// Tokenizer is a scanner interface: it creates token streams for input texts.
type Tokenizer interface {
	Tokenize(input string) TokenStream
}

// Class is a lexical class, i.e. a token type label together with a pattern.
// Classes with an empty type label match input but produce no tokens.
// They are used for skipping whitespace and comments.
type Class struct {
	Type    string
	Pattern string
}

// Skip returns a class for skippable input.
func Skip(pattern string) Class {
	return Class{Pattern: pattern}
}

// CheckClasses validates a list of lexical classes. It returns an error if a
// type label is used more than once or collides with the end-of-input label,
// or if a pattern is degenerate. A pattern is degenerate if it has at most one
// character or if it is unable to consume any input, like `^$` or `()`.
// More than one class may have an empty type label.
func CheckClasses(classes []Class) error {
	seen := map[string]bool{lrc.EOF: true}
	for _, c := range classes {
		if c.Type != "" {
			if seen[c.Type] {
				return fmt.Errorf("%w: %q", lrc.ErrRepeatedClass, c.Type)
			}
			seen[c.Type] = true
		}
		if utf8.RuneCountInString(c.Pattern) <= 1 || !consumes(c.Pattern) {
			return fmt.Errorf("%w: %q for class %q", lrc.ErrDegeneratePattern, c.Pattern, c.Type)
		}
	}
	return nil
}

// consumes is false for patterns without any sub-expression matching a
// character. Patterns which do not parse are left to the compiler.
func consumes(pattern string) bool {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return true
	}
	var walk func(*syntax.Regexp) bool
	walk = func(re *syntax.Regexp) bool {
		switch re.Op {
		case syntax.OpLiteral:
			return len(re.Rune) > 0
		case syntax.OpCharClass:
			return len(re.Rune) > 0
		case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
			return true
		}
		for _, sub := range re.Sub {
			if walk(sub) {
				return true
			}
		}
		return false
	}
	return walk(re)
}

func anchored(pattern string) string {
	if strings.HasPrefix(pattern, "^") {
		return pattern
	}
	return "^" + pattern
}

// --- Lexer -----------------------------------------------------------------

type matcher struct {
	typ string
	re  *regexp.Regexp
}

// Lexer is the default Tokenizer, driven by an ordered list of lexical classes.
// A Lexer is immutable and may be used for tokenizing more than one input
// concurrently.
type Lexer struct {
	matchers []matcher
}

var _ Tokenizer = (*Lexer)(nil)

// NewLexer creates a lexer from an ordered list of lexical classes.
// Patterns are anchored to the current scan position; if a pattern does not
// start with '^', it will be inserted.
//
// NewLexer will return an error if a type label repeats or a pattern is degenerate
// or does not compile.
func NewLexer(classes []Class) (*Lexer, error) {
	if err := CheckClasses(classes); err != nil {
		return nil, err
	}
	lx := &Lexer{matchers: make([]matcher, 0, len(classes))}
	for _, c := range classes {
		re, err := regexp.Compile(anchored(c.Pattern))
		if err != nil {
			return nil, fmt.Errorf("%w: class %q: %s", lrc.ErrPattern, c.Type, err.Error())
		}
		lx.matchers = append(lx.matchers, matcher{typ: c.Type, re: re})
	}
	tracer().Debugf("lexer with %d classes created", len(lx.matchers))
	return lx, nil
}

// Tokenize creates a token stream for an input text.
func (lx *Lexer) Tokenize(input string) TokenStream {
	return &tokenStream{
		lexer: lx,
		input: input,
		line:  1,
	}
}

// --- Token stream ----------------------------------------------------------

type tokenStream struct {
	lexer   *Lexer
	input   string
	pos     int // byte offset
	line    int
	column  int
	token   lrc.Token
	err     error
	eofSent bool
	done    bool
}

func (ts *tokenStream) Next() bool {
	if ts.done {
		return false
	}
	for ts.pos < len(ts.input) {
		typ, lexeme, ok := ts.match()
		if !ok {
			ts.err = fmt.Errorf("%w at %d:%d: %q", lrc.ErrLexical, ts.line, ts.column, excerpt(ts.input[ts.pos:]))
			tracer().Errorf("scanner error: %v", ts.err)
			ts.done = true
			return false
		}
		start := lrc.Position{Line: ts.line, Column: ts.column}
		ts.advance(lexeme)
		if typ == "" {
			continue
		}
		ts.token = lrc.Token{
			Type: typ,
			Loc: lrc.Location{
				Source: lexeme,
				Start:  start,
				End:    lrc.Position{Line: ts.line, Column: ts.column},
			},
		}
		tracer().Debugf("token %v", ts.token)
		return true
	}
	if !ts.eofSent {
		ts.eofSent = true
		at := lrc.Position{Line: ts.line, Column: ts.column}
		ts.token = lrc.Token{Type: lrc.EOF, Loc: lrc.Location{Start: at, End: at}}
		tracer().Debugf("scanner reached end of input")
		return true
	}
	ts.done = true
	return false
}

func (ts *tokenStream) Token() lrc.Token {
	return ts.token
}

func (ts *tokenStream) Err() error {
	return ts.err
}

// match tries the classes in order. Empty matches do not count, as they would
// not advance the scan position.
func (ts *tokenStream) match() (string, string, bool) {
	rest := ts.input[ts.pos:]
	for _, m := range ts.lexer.matchers {
		if loc := m.re.FindStringIndex(rest); loc != nil && loc[1] > 0 {
			return m.typ, rest[:loc[1]], true
		}
	}
	return "", "", false
}

// advance moves the scan position behind lexeme and tracks line and column.
func (ts *tokenStream) advance(lexeme string) {
	ts.pos += len(lexeme)
	last := lexeme
	if n := strings.Count(lexeme, "\n"); n > 0 {
		ts.line += n
		ts.column = 0
		last = lexeme[strings.LastIndex(lexeme, "\n")+1:]
	}
	ts.column += utf8.RuneCountInString(last)
}

func excerpt(s string) string {
	if len(s) > 16 {
		return s[:16] + "…"
	}
	return s
}
