package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/lrc"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("Program").N("A").T("a").End()
	b.LHS("A").T("b").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if g.Size() != 4 {
		t.Errorf("expected 3 rules + start rule, have %d", g.Size())
	}
	if r := g.Rule(0); r.LHS != g.Start() || len(r.RHS()) != 1 || r.RHS()[0] != g.Goal() {
		t.Errorf("rule 0 should be the augmented start rule, is %v", r)
	}
	if g.Goal().Name != DefaultGoal {
		t.Errorf("expected goal to be %s, is %s", DefaultGoal, g.Goal())
	}
	if !g.Rule(3).IsEps() {
		t.Errorf("expected rule 3 to be an epsilon rule: %v", g.Rule(3))
	}
	if A := g.SymbolByName("a"); A == nil || !A.IsTerminal() {
		t.Errorf("expected 'a' to be a terminal")
	}
	if A := g.SymbolByName("A"); A == nil || A.IsTerminal() {
		t.Errorf("expected 'A' to be a non-terminal")
	}
	if g.EOF().Value != 0 || !g.EOF().IsEOF() || g.EOF().Name != lrc.EOF {
		t.Errorf("expected EOF to have value 0, is %d", g.EOF().Value)
	}
	if len(g.RulesFor(g.SymbolByName("A"))) != 2 {
		t.Errorf("expected 2 rules for A")
	}
}

func TestGrammarPartition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.lr")
	defer teardown()
	//
	g, err := NewGrammar("P", []RuleDef{
		{Left: "Program", Right: []string{"Stmt", ";"}},
		{Left: "Stmt", Right: []string{"id", "=", "id"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	terms := g.EachTerminal(func(T *Symbol) interface{} { return T.Name })
	if len(terms) != 4 { // #eof ; id =
		t.Errorf("expected 4 terminals, have %v", terms)
	}
	nonterms := g.EachNonTerminal(func(N *Symbol) interface{} { return N.Name })
	if len(nonterms) != 3 { // #start Program Stmt
		t.Errorf("expected 3 non-terminals, have %v", nonterms)
	}
}

func TestGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.lr")
	defer teardown()
	//
	for i, defs := range [][]RuleDef{
		{{Left: "S", Right: []string{"a"}}},                  // no rule for Program
		{{Left: "Program", Right: []string{lrc.EOF}}},        // reserved label
		{{Left: "Program", Right: []string{"a", ""}}},        // empty label
		{{Left: StartSymbolName, Right: []string{"Program"}}}, // reserved left side
	} {
		if _, err := NewGrammar("E", defs); !errors.Is(err, lrc.ErrGrammar) {
			t.Errorf("test %d: expected grammar error, got %v", i, err)
		}
	}
	b := NewGrammarBuilder("E")
	b.LHS("Program").T("A").End()
	b.LHS("A").T("a").End()
	if _, err := b.Grammar(); !errors.Is(err, lrc.ErrGrammar) {
		t.Errorf("expected terminal used as LHS to be rejected, got %v", err)
	}
	b = NewGrammarBuilder("E")
	b.LHS("Program").N("A").End()
	if _, err := b.Grammar(); !errors.Is(err, lrc.ErrGrammar) {
		t.Errorf("expected non-terminal without rules to be rejected, got %v", err)
	}
}

func TestGrammarGoal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.lr")
	defer teardown()
	//
	g, err := NewGrammar("S", []RuleDef{{Left: "S", Right: []string{"a"}}}, Goal("S"))
	if err != nil {
		t.Fatal(err)
	}
	if g.Rule(0).RHS()[0].Name != "S" {
		t.Errorf("expected start rule to derive S, is %v", g.Rule(0))
	}
}
