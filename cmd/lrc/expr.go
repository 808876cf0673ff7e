package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/lrc"
	"github.com/npillmayer/lrc/lr"
	"github.com/npillmayer/lrc/lr/driver"
	"github.com/npillmayer/lrc/lr/scanner"
	"github.com/npillmayer/lrc/lr/scanner/lexmach"
	"github.com/npillmayer/lrc/tree"
	"github.com/npillmayer/schuko/tracing"
)

// We provide a simple expression grammar as a default for experiments.
//
//  Program ➞ Expr
//  Expr    ➞ Expr SumOp Term  |  Term
//  Term    ➞ Term ProdOp Factor  |  Factor
//  Factor  ➞ number  |  - Factor
//  SumOp   ➞ +  |  -
//  ProdOp  ➞ *  |  /
//
// States are merged by item cores and keep the lookahead they were created with.
// Parenthesized sub-expressions would reach the same states with ')' as an
// additional follower, thus the grammar has no parentheses.
func makeExprGrammar() (*lr.Grammar, error) {
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("Program").N("Expr").End()
	b.LHS("Expr").N("Expr").N("SumOp").N("Term").End()
	b.LHS("Expr").N("Term").End()
	b.LHS("Term").N("Term").N("ProdOp").N("Factor").End()
	b.LHS("Term").N("Factor").End()
	b.LHS("Factor").T("number").End()
	b.LHS("Factor").T("-").N("Factor").End()
	b.LHS("SumOp").T("+").End()
	b.LHS("SumOp").T("-").End()
	b.LHS("ProdOp").T("*").End()
	b.LHS("ProdOp").T("/").End()
	return b.Grammar()
}

var exprClasses = []scanner.Class{
	{Type: "number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Type: "+", Pattern: `\+`},
	{Type: "-", Pattern: `\-`},
	{Type: "*", Pattern: `\*`},
	{Type: "/", Pattern: `\/`},
	scanner.Skip(`( |\t|\n|\r)+`),
}

// exprLang is the language tag of trees produced for expressions.
const exprLang = "expr"

// Expr bundles everything needed to compile expressions.
type Expr struct {
	G         *lr.Grammar
	Gen       *lr.TableGenerator
	Tokenizer scanner.Tokenizer
	Compiler  *driver.Compiler
}

// newExpr builds the tables for the expression grammar and a compiler which
// lowers compiled expressions to a program holding the tree and its value.
func newExpr(useLexmachine bool) (*Expr, error) {
	level := tracing.Select("lrc.lr").GetTraceLevel()
	tracing.Select("lrc.lr").SetTraceLevel(tracing.LevelError)
	g, err := makeExprGrammar()
	if err != nil {
		return nil, fmt.Errorf("error creating grammar: %w", err)
	}
	lrgen, err := lr.BuildTables(g)
	tracing.Select("lrc.lr").SetTraceLevel(level)
	if err != nil {
		return nil, err
	}
	g.Dump() // only visible in debug mode
	var tokenizer scanner.Tokenizer
	if useLexmachine {
		tokenizer, err = lexmach.NewLMAdapter(exprClasses)
	} else {
		tokenizer, err = scanner.NewLexer(exprClasses)
	}
	if err != nil {
		return nil, err
	}
	builder := tree.NewBuilder(tree.LangRoot("Program", exprLang))
	c, err := driver.NewCompiler(g, lrgen.ActionTable(), tokenizer, builder.Factory,
		driver.WithPostProcessor(exprLang, evaluate))
	if err != nil {
		return nil, err
	}
	return &Expr{G: g, Gen: lrgen, Tokenizer: tokenizer, Compiler: c}, nil
}

// evaluate lowers an expression tree to a program with the tree and its value
// as body.
func evaluate(p *lrc.LangProgram) (interface{}, error) {
	if len(p.Body) != 1 {
		return nil, fmt.Errorf("expected a single expression, have %d", len(p.Body))
	}
	x, err := eval(p.Body[0])
	if err != nil {
		return nil, err
	}
	return &lrc.Program{SourceType: p.SourceType, Body: []interface{}{p.Body[0], x}}, nil
}

func eval(x interface{}) (float64, error) {
	switch v := x.(type) {
	case lrc.Token:
		if v.Type != "number" {
			return 0, fmt.Errorf("cannot evaluate %s", v)
		}
		return strconv.ParseFloat(v.Lexeme(), 64)
	case *tree.Node:
		switch len(v.Children) {
		case 2: // - Factor
			y, err := eval(v.Children[1])
			return -y, err
		case 3: // left op right
			l, err := eval(v.Children[0])
			if err != nil {
				return 0, err
			}
			r, err := eval(v.Children[2])
			if err != nil {
				return 0, err
			}
			op, _ := v.Children[1].(lrc.Token)
			return arith(op.Type, l, r)
		}
	}
	return 0, fmt.Errorf("cannot evaluate %v", x)
}

func arith(op string, l, r float64) (float64, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("unknown operator %q", op)
}
