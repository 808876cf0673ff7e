package lexmach

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/lrc"
	"github.com/npillmayer/lrc/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'lrc.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrc.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	types []string // token type labels by lexmachine token ID
}

var _ scanner.Tokenizer = (*LMAdapter)(nil)

// NewLMAdapter creates a new lexmachine adapter from a list of lexical classes.
// The classes are validated the same way scanner.NewLexer does. Leading anchors
// are removed, as lexmachine always matches at the current position.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(classes []scanner.Class) (*LMAdapter, error) {
	if err := scanner.CheckClasses(classes); err != nil {
		return nil, err
	}
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, c := range classes {
		pattern := []byte(strings.TrimPrefix(c.Pattern, "^"))
		if c.Type == "" {
			adapter.Lexer.Add(pattern, Skip)
			continue
		}
		adapter.Lexer.Add(pattern, MakeToken(c.Type, len(adapter.types)))
		adapter.types = append(adapter.types, c.Type)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, fmt.Errorf("%w: %s", lrc.ErrPattern, err.Error())
	}
	return adapter, nil
}

// Tokenize creates a scanner for a given input. The scanner implements the
// scanner.TokenStream interface.
func (lm *LMAdapter) Tokenize(input string) scanner.TokenStream {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{err: err, done: true}
	}
	return &LMScanner{scanner: s, types: lm.types, input: input}
}

// LMScanner is a token stream type for lexmachine scanners.
type LMScanner struct {
	scanner *lexmachine.Scanner
	types   []string
	token   lrc.Token
	input   string
	err     error
	eofSent bool
	done    bool
}

var _ scanner.TokenStream = (*LMScanner)(nil)

// Next is part of the TokenStream interface.
func (lms *LMScanner) Next() bool {
	if lms.done {
		return false
	}
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			err = fmt.Errorf("%w at %d:%d", lrc.ErrLexical, ui.StartLine, ui.StartColumn-1)
		} else {
			err = fmt.Errorf("%w: %s", lrc.ErrLexical, err.Error())
		}
		tracer().Errorf("scanner error: %v", err)
		lms.err, lms.done = err, true
		return false
	}
	if eof {
		if lms.eofSent {
			lms.done = true
			return false
		}
		lms.eofSent = true
		end := endOf(lms.input)
		lms.token = lrc.Token{Type: lrc.EOF, Loc: lrc.Location{Start: end, End: end}}
		return true
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	lms.token = lrc.Token{
		Type: lms.types[token.Type],
		Loc: lrc.Location{
			Source: string(token.Lexeme),
			Start:  lrc.Position{Line: token.StartLine, Column: token.StartColumn - 1},
			End:    lrc.Position{Line: token.EndLine, Column: token.EndColumn},
		},
	}
	return true
}

// endOf returns the position behind the last character of input, including
// skipped text. Lines count from 1, columns count runes from 0.
func endOf(input string) lrc.Position {
	last := input[strings.LastIndex(input, "\n")+1:]
	return lrc.Position{
		Line:   1 + strings.Count(input, "\n"),
		Column: utf8.RuneCountInString(last),
	}
}

// Token is part of the TokenStream interface.
func (lms *LMScanner) Token() lrc.Token {
	return lms.token
}

// Err is part of the TokenStream interface.
func (lms *LMScanner) Err() error {
	return lms.err
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, name, m), nil
	}
}
