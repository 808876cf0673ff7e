package main

import (
	"errors"
	"testing"

	"github.com/npillmayer/lrc"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestExprGrammarHasNoConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.cli")
	defer teardown()
	//
	expr, err := newExpr(false)
	if err != nil {
		t.Fatal(err)
	}
	if expr.Gen.HasConflicts {
		t.Errorf("expected expression grammar to be free of conflicts: %v", expr.Gen.Conflicts())
	}
}

func TestExprEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.cli")
	defer teardown()
	//
	for _, useLexmachine := range []bool{false, true} {
		expr, err := newExpr(useLexmachine)
		if err != nil {
			t.Fatal(err)
		}
		for input, value := range map[string]float64{
			"1":             1,
			"1 + 2 * 3":     7,
			"10 - 4 - 3":    3,
			"2 * -3":        -6,
			"- - 2":         2,
			"1.5 * 4 / 2":   3,
			"1 - -1 * 2":    3,
			"\n8 /\t2 - 1 ": 3,
		} {
			program, err := expr.Compiler.CompileScript(input)
			if err != nil {
				t.Errorf("%q: %v", input, err)
				continue
			}
			if len(program.Body) != 2 || program.Body[1] != value {
				t.Errorf("%q: expected value %g, have %v", input, value, program.Body)
			}
		}
	}
}

func TestExprErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.cli")
	defer teardown()
	//
	expr, err := newExpr(false)
	if err != nil {
		t.Fatal(err)
	}
	for input, expected := range map[string]error{
		"1 +":   lrc.ErrUnexpectedEOF,
		"1 2":   lrc.ErrSyntax,
		"* 2":   lrc.ErrSyntax,
		"1 % 2": lrc.ErrLexical,
		"":      lrc.ErrUnexpectedEOF,
	} {
		if _, err := expr.Compiler.CompileScript(input); !errors.Is(err, expected) {
			t.Errorf("%q: expected %v, got %v", input, expected, err)
		}
	}
	if _, err := expr.Compiler.CompileScript("1 / 0"); err == nil {
		t.Errorf("expected division by zero to fail")
	}
}

func TestLeveledList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.cli")
	defer teardown()
	//
	expr, err := newExpr(false)
	if err != nil {
		t.Fatal(err)
	}
	program, err := expr.Compiler.CompileScript("1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	ll := leveledList(program.Body[0])
	if len(ll) != 4 || ll[0].Text != "Expr" || ll[1].Level != 1 {
		t.Errorf("unexpected leveled list %v", ll)
	}
}
