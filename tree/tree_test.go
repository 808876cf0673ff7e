package tree

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/lrc"
	"github.com/npillmayer/lrc/lr"
	"github.com/npillmayer/lrc/lr/driver"
	"github.com/npillmayer/lrc/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func sumCompiler(t *testing.T, b *Builder, opts ...driver.Option) *driver.Compiler {
	gb := lr.NewGrammarBuilder("Sum")
	gb.LHS("Program").N("Sum").End()
	gb.LHS("Sum").N("Sum").T("+").N("Atom").End()
	gb.LHS("Sum").N("Atom").End()
	gb.LHS("Atom").T("n").End()
	g, err := gb.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen, err := lr.BuildTables(g)
	if err != nil {
		t.Fatal(err)
	}
	lexer, err := scanner.NewLexer([]scanner.Class{
		{Type: "n", Pattern: `[0-9]+`},
		{Type: "+", Pattern: `\+`},
		scanner.Skip(`\s+`),
	})
	if err != nil {
		t.Fatal(err)
	}
	c, err := driver.NewCompiler(g, lrgen.ActionTable(), lexer, b.Factory, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestBuilderCollapsesChains(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.tree")
	defer teardown()
	//
	c := sumCompiler(t, NewBuilder())
	program, err := c.CompileScript("1 + 2 + 3")
	if err != nil {
		t.Fatal(err)
	}
	if len(program.Body) != 1 {
		t.Fatalf("expected a single top level node, have %v", program.Body)
	}
	n, ok := program.Body[0].(*Node)
	if !ok {
		t.Fatalf("expected body to be a node, is %T", program.Body[0])
	}
	if n.String() != "(Sum (Sum 1 + 2) + 3)" {
		t.Errorf("unexpected tree %s", n)
	}
}

func TestBuilderKeepChains(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.tree")
	defer teardown()
	//
	c := sumCompiler(t, NewBuilder(KeepChains()))
	program, err := c.CompileScript("1")
	if err != nil {
		t.Fatal(err)
	}
	if s := program.Body[0].(*Node).String(); s != "(Sum (Atom 1))" {
		t.Errorf("unexpected tree %s", s)
	}
}

func TestBuilderRewriter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.tree")
	defer teardown()
	//
	b := NewBuilder()
	b.AddRewriter("Sum", func(n *Node, ctx lrc.Context) (interface{}, error) {
		count, _ := ctx.Get("sums").(int)
		ctx.Set("sums", count+1)
		if len(n.Children) == 3 { // drop the operator
			n.Children = []interface{}{n.Children[0], n.Children[2]}
		}
		return n, nil
	})
	c := sumCompiler(t, b)
	program, err := c.CompileScript("1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	if s := program.Body[0].(*Node).String(); s != "(Sum (Sum 1) 2)" {
		t.Errorf("unexpected tree %s", s)
	}
	b.AddRewriter("Atom", func(n *Node, ctx lrc.Context) (interface{}, error) {
		return nil, errors.New("no atoms")
	})
	if _, err = c.CompileScript("1"); !errors.Is(err, lrc.ErrNodeFactory) {
		t.Errorf("expected rewriter error to abort compilation, got %v", err)
	}
}

func TestBuilderLangRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.tree")
	defer teardown()
	//
	var lowered bool
	lower := func(p *lrc.LangProgram) (interface{}, error) {
		lowered = true
		return &lrc.Program{SourceType: p.SourceType, Body: p.Body}, nil
	}
	c := sumCompiler(t, NewBuilder(LangRoot("Program", "sum")), driver.WithPostProcessor("sum", lower))
	if _, err := c.CompileScript("1 + 2"); err != nil {
		t.Fatal(err)
	}
	if !lowered {
		t.Errorf("expected language 'sum' to be post-processed")
	}
	c = sumCompiler(t, NewBuilder(LangRoot("Program", "sum")))
	if _, err := c.CompileScript("1 + 2"); !errors.Is(err, lrc.ErrUnprocessableLang) {
		t.Errorf("expected unprocessable language, got %v", err)
	}
}

func TestWalk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrc.tree")
	defer teardown()
	//
	c := sumCompiler(t, NewBuilder())
	program, err := c.CompileScript("1 + 2 + 3")
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	Walk(program, func(x interface{}, depth int) bool {
		labels = append(labels, strings.Repeat(".", depth)+Label(x))
		return true
	})
	expected := []string{
		"(Program script |1|)",
		".Sum",
		"..Sum",
		`...n "1"`,
		`...+ "+"`,
		`...n "2"`,
		`..+ "+"`,
		`..n "3"`,
	}
	if strings.Join(labels, "|") != strings.Join(expected, "|") {
		t.Errorf("unexpected walk:\n%s", strings.Join(labels, "\n"))
	}
	var count int
	Walk(program, func(x interface{}, depth int) bool {
		count++
		return depth < 1
	})
	if count != 2 {
		t.Errorf("expected walk to be pruned below depth 1, visited %d", count)
	}
}
