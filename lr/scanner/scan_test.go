package scanner

import (
	"errors"
	"testing"

	"github.com/npillmayer/lrc"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var exprClasses = []Class{
	{Type: "kw", Pattern: `if|else`},
	{Type: "id", Pattern: `[a-zA-Z]+`},
	{Type: "num", Pattern: `[0-9]+`},
	Skip(`//[^\n]*`), // has to precede "op", which would match '/'
	{Type: "op", Pattern: `[-+*/=]`},
	Skip(`[ \t\n]+`),
}

func collect(t *testing.T, lx *Lexer, input string) ([]lrc.Token, error) {
	var tokens []lrc.Token
	ts := lx.Tokenize(input)
	for ts.Next() {
		t.Logf(" %6s | %10q | %s", ts.Token().Type, ts.Token().Lexeme(), ts.Token().Loc)
		tokens = append(tokens, ts.Token())
	}
	return tokens, ts.Err()
}

func TestScanTokenCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.scanner")
	defer teardown()
	//
	lx, err := NewLexer(exprClasses)
	if err != nil {
		t.Fatal(err)
	}
	for i, test := range []struct {
		input string
		count int // including EOF
	}{
		{"1", 2},
		{"1+12", 4},
		{"Hello World", 3},
		{"x = y // commented", 4},
		{"", 1},
		{"   \n  ", 1},
	} {
		tokens, err := collect(t, lx, test.input)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
		}
		if len(tokens) != test.count {
			t.Errorf("expected token count for #%d to be %d, is %d", i, test.count, len(tokens))
		}
		if len(tokens) == 0 || !tokens[len(tokens)-1].IsEOF() {
			t.Errorf("expected token stream #%d to end with EOF", i)
		}
	}
}

func TestScanPriorityIsPositional(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.scanner")
	defer teardown()
	//
	lx, _ := NewLexer(exprClasses)
	tokens, _ := collect(t, lx, "if iffy")
	types := []string{"kw", "kw", "id", lrc.EOF} // "iffy" is shadowed by "if" + "fy"
	if len(tokens) != len(types) {
		t.Fatalf("expected %d tokens, have %d", len(types), len(tokens))
	}
	for i, typ := range types {
		if tokens[i].Type != typ {
			t.Errorf("expected token #%d to be of type %s, is %s", i, typ, tokens[i].Type)
		}
	}
	if tokens[2].Lexeme() != "fy" {
		t.Errorf("expected lexeme 'fy', have %q", tokens[2].Lexeme())
	}
}

func TestScanPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.scanner")
	defer teardown()
	//
	lx, _ := NewLexer(exprClasses)
	tokens, err := collect(t, lx, "a\n  bc // x\nd")
	if err != nil {
		t.Fatal(err)
	}
	expected := []lrc.Location{
		{Source: "a", Start: lrc.Position{Line: 1, Column: 0}, End: lrc.Position{Line: 1, Column: 1}},
		{Source: "bc", Start: lrc.Position{Line: 2, Column: 2}, End: lrc.Position{Line: 2, Column: 4}},
		{Source: "d", Start: lrc.Position{Line: 3, Column: 0}, End: lrc.Position{Line: 3, Column: 1}},
		{Source: "", Start: lrc.Position{Line: 3, Column: 1}, End: lrc.Position{Line: 3, Column: 1}},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %d", len(expected), len(tokens))
	}
	for i, loc := range expected {
		if tokens[i].Loc != loc {
			t.Errorf("token #%d: expected location %+v, have %+v", i, loc, tokens[i].Loc)
		}
	}
}

func TestScanSingleEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.scanner")
	defer teardown()
	//
	lx, _ := NewLexer(exprClasses)
	ts := lx.Tokenize("x")
	n := 0
	for ts.Next() {
		n++
	}
	if n != 2 {
		t.Errorf("expected 2 tokens, have %d", n)
	}
	if ts.Next() {
		t.Errorf("exhausted token stream should not restart")
	}
}

func TestScanLexicalError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.scanner")
	defer teardown()
	//
	lx, _ := NewLexer(exprClasses)
	tokens, err := collect(t, lx, "a # b")
	if !errors.Is(err, lrc.ErrLexical) {
		t.Errorf("expected lexical error, got %v", err)
	}
	if len(tokens) != 1 || tokens[0].Type != "id" {
		t.Errorf("expected one token before the error, have %v", tokens)
	}
}

func TestScanEmptyMatchDoesNotStall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.scanner")
	defer teardown()
	//
	lx, err := NewLexer([]Class{
		Skip(`\s*`),
		{Type: "id", Pattern: `[a-z]+`},
	})
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := collect(t, lx, "ab cd")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Errorf("expected 2 ids and EOF, have %v", tokens)
	}
}

func TestScanSeveralSkipClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.scanner")
	defer teardown()
	//
	lx, err := NewLexer([]Class{
		Skip(`#[^\n]*`),
		{Type: "id", Pattern: `[a-z]+`},
		Skip(`\s+`),
	})
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := collect(t, lx, "ab # cd\n  ef #\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 || tokens[0].Lexeme() != "ab" || tokens[1].Lexeme() != "ef" {
		t.Fatalf("expected ab, ef and EOF, have %v", tokens)
	}
	if !tokens[2].IsEOF() || tokens[2].Loc.Start != (lrc.Position{Line: 3, Column: 0}) {
		t.Errorf("expected EOF at 3:0, have %s", tokens[2].Loc.Start)
	}
}

func TestLexerConstruction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.scanner")
	defer teardown()
	//
	for i, test := range []struct {
		classes []Class
		err     error
	}{
		{[]Class{{"a", "aa"}, {"a", "bb"}}, lrc.ErrRepeatedClass},
		{[]Class{{lrc.EOF, "aa"}}, lrc.ErrRepeatedClass},
		{[]Class{{"x", "x"}}, lrc.ErrDegeneratePattern},
		{[]Class{{"x", ""}}, lrc.ErrDegeneratePattern},
		{[]Class{{"x", "^"}}, lrc.ErrDegeneratePattern},
		{[]Class{{"x", "^$"}}, lrc.ErrDegeneratePattern},
		{[]Class{{"x", "$"}}, lrc.ErrDegeneratePattern},
		{[]Class{{"x", "()"}}, lrc.ErrDegeneratePattern},
		{[]Class{{"x", "(?:)"}}, lrc.ErrDegeneratePattern},
		{[]Class{{"x", `\b`}}, lrc.ErrDegeneratePattern},
		{[]Class{{"x", "^()$"}}, lrc.ErrDegeneratePattern},
		{[]Class{{"x", "a*"}}, nil},
		{[]Class{{"x", "(ab"}}, lrc.ErrPattern},
		{[]Class{Skip(`\s+`), Skip(`#[^\n]*`)}, nil},
	} {
		_, err := NewLexer(test.classes)
		if test.err == nil && err != nil || !errors.Is(err, test.err) {
			t.Errorf("test %d: expected error %v, got %v", i, test.err, err)
		}
	}
}
