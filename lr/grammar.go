package lr

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/lrc"
)

// --- Symbols ---------------------------------------------------------------

// StartSymbolName is the name of the synthetic start symbol of the augmented
// start rule. It is reserved.
const StartSymbolName = "#start"

// DefaultGoal is the symbol the augmented start rule derives, if not changed
// with option Goal.
const DefaultGoal = "Program"

// epsilonValue marks epsilon within FIRST sets. It never denotes a real symbol.
const epsilonValue = -1

type symKind uint8

const (
	terminalSym symKind = iota
	nonTerminalSym
	eofSym
)

// Symbol is a grammar symbol. Symbols are created by a grammar and are unique
// within it; clients compare them by identity.
//
// Value is a serial number, which is used as the column index of the symbol
// in parser tables. The end-of-input marker always has value 0.
type Symbol struct {
	Name  string
	Value int
	kind  symKind
}

// IsTerminal returns true if this symbol is a terminal or the end-of-input marker.
func (A *Symbol) IsTerminal() bool {
	return A.kind != nonTerminalSym
}

// IsEOF returns true for the end-of-input marker.
func (A *Symbol) IsEOF() bool {
	return A.kind == eofSym
}

func (A *Symbol) String() string {
	return A.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a type for rules of a grammar. Rules are numbered in declaration
// order, starting at 1. Rule 0 is the augmented start rule, reducing it means
// accepting the input.
type Rule struct {
	Serial int     // order number of this rule within the grammar
	LHS    *Symbol // symbol of left hand side
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len is the number of symbols of the right hand side. A reduction by this rule
// consumes Len() stack entries.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEps returns true if this is an epsilon-rule.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s ::= [", r.LHS)
	for i, A := range r.rhs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(A.Name)
	}
	b.WriteString("]")
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// RuleDef is the client side definition of a production rule, as a left hand side
// label and a sequence of symbol labels.
// Labels which are never used as a left hand side denote terminals.
type RuleDef struct {
	Left  string
	Right []string
}

// Grammar is a type for a grammar. Usually created using a GrammarBuilder or
// by NewGrammar. A grammar is immutable after construction.
type Grammar struct {
	Name         string
	rules        []*Rule // rules[0] is the augmented start rule
	symbols      []*Symbol
	byName       map[string]*Symbol
	terminals    []*Symbol
	nonterminals []*Symbol
	rulesFor     map[*Symbol][]*Rule
	goal         *Symbol
}

// GrammarOption configures grammar construction.
type GrammarOption func(*grammarConfig)

type grammarConfig struct {
	goal string
}

// Goal sets the name of the symbol the augmented start rule derives.
// Default is DefaultGoal.
func Goal(name string) GrammarOption {
	return func(c *grammarConfig) {
		c.goal = name
	}
}

// NewGrammar creates a grammar from a list of rule definitions. Rule numbers
// reflect the order of the definitions, starting at 1.
//
// The set of non-terminals is made up of all the left hand sides, every other
// symbol is a terminal. An augmented start rule
//
//     #start ::= [Program]
//
// is synthesized and takes rule number 0.
func NewGrammar(name string, defs []RuleDef, opts ...GrammarOption) (*Grammar, error) {
	conf := grammarConfig{goal: DefaultGoal}
	for _, opt := range opts {
		opt(&conf)
	}
	g := &Grammar{
		Name:     name,
		byName:   make(map[string]*Symbol),
		rulesFor: make(map[*Symbol][]*Rule),
	}
	eof := g.addSymbol(lrc.EOF, eofSym)
	start := g.addSymbol(StartSymbolName, nonTerminalSym)
	lhs := make(map[string]bool, len(defs))
	for i, d := range defs {
		if err := checkLabel(d.Left); err != nil {
			return nil, fmt.Errorf("%w: rule %d: %s", lrc.ErrGrammar, i+1, err.Error())
		}
		lhs[d.Left] = true
	}
	if !lhs[conf.goal] {
		return nil, fmt.Errorf("%w: goal symbol %q has no rules", lrc.ErrGrammar, conf.goal)
	}
	for _, d := range defs { // number symbols in order of appearance
		g.addSymbol(d.Left, nonTerminalSym)
		for _, label := range d.Right {
			if err := checkLabel(label); err != nil {
				return nil, fmt.Errorf("%w: rule for %s: %s", lrc.ErrGrammar, d.Left, err.Error())
			}
			if lhs[label] {
				g.addSymbol(label, nonTerminalSym)
			} else {
				g.addSymbol(label, terminalSym)
			}
		}
	}
	g.goal = g.byName[conf.goal]
	startRule := &Rule{Serial: 0, LHS: start, rhs: []*Symbol{g.goal}}
	g.rules = append(g.rules, startRule)
	g.rulesFor[start] = []*Rule{startRule}
	for i, d := range defs {
		r := &Rule{Serial: i + 1, LHS: g.byName[d.Left]}
		for _, label := range d.Right {
			r.rhs = append(r.rhs, g.byName[label])
		}
		g.rules = append(g.rules, r)
		g.rulesFor[r.LHS] = append(g.rulesFor[r.LHS], r)
	}
	tracer().Debugf("grammar %s has %d terminals (%s included) and %d non-terminals",
		name, len(g.terminals), eof, len(g.nonterminals))
	return g, nil
}

func checkLabel(label string) error {
	switch label {
	case "":
		return fmt.Errorf("empty symbol label")
	case lrc.EOF, StartSymbolName:
		return fmt.Errorf("symbol label %q is reserved", label)
	}
	return nil
}

func (g *Grammar) addSymbol(name string, kind symKind) *Symbol {
	if A, ok := g.byName[name]; ok {
		return A
	}
	A := &Symbol{Name: name, Value: len(g.symbols), kind: kind}
	g.symbols = append(g.symbols, A)
	g.byName[name] = A
	if A.IsTerminal() {
		g.terminals = append(g.terminals, A)
	} else {
		g.nonterminals = append(g.nonterminals, A)
	}
	return A
}

// Rule gets a grammar rule by serial number. Rule 0 is the augmented start rule.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Size returns the number of rules, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// SymbolByName returns a symbol by its label, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.byName[name]
}

// EOF returns the end-of-input marker.
func (g *Grammar) EOF() *Symbol {
	return g.symbols[0]
}

// Start returns the synthetic start symbol.
func (g *Grammar) Start() *Symbol {
	return g.symbols[1]
}

// Goal returns the symbol derived by the augmented start rule.
func (g *Grammar) Goal() *Symbol {
	return g.goal
}

// SymbolCount returns the number of symbols, including the end-of-input marker
// and the start symbol.
func (g *Grammar) SymbolCount() int {
	return len(g.symbols)
}

// RulesFor returns all the rules with left hand side N, in declaration order.
func (g *Grammar) RulesFor(N *Symbol) []*Rule {
	return g.rulesFor[N]
}

// EachSymbol iterates over all symbols of the grammar, in order of symbol value.
func (g *Grammar) EachSymbol(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.symbols {
		r = append(r, mapper(A))
	}
	return r
}

// EachNonTerminal iterates over all non-terminal symbols of the grammar.
func (g *Grammar) EachNonTerminal(mapper func(N *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, N := range g.nonterminals {
		r = append(r, mapper(N))
	}
	return r
}

// EachTerminal iterates over all terminals of the grammar, end-of-input included.
func (g *Grammar) EachTerminal(mapper func(T *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, T := range g.terminals {
		r = append(r, mapper(T))
	}
	return r
}

// Dump is a debugging helper, tracing all the rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Clients add rules
// one by one.
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("Program").N("A").T("a").End()  // Program  ->  A a
//    b.LHS("A").T("b").End()               // A  ->  b
//    b.LHS("A").Epsilon()                  // A  ->
//    g, err := b.Grammar()
//
// T and N document the intent of a symbol. The builder checks the intent against
// the set of left hand sides when the grammar is created.
type GrammarBuilder struct {
	name   string
	defs   []RuleDef
	intent map[string]symKind
	opts   []GrammarOption
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string, opts ...GrammarOption) *GrammarBuilder {
	return &GrammarBuilder{
		name:   gname,
		intent: make(map[string]symKind),
		opts:   opts,
	}
}

// RuleBuilder is a builder type for a single rule. Created by GrammarBuilder.LHS.
type RuleBuilder struct {
	gb  *GrammarBuilder
	def RuleDef
}

// LHS starts a rule given the left hand side symbol.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	return &RuleBuilder{gb: gb, def: RuleDef{Left: s}}
}

// N appends a non-terminal to the right hand side of a rule.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.gb.intent[s] = nonTerminalSym
	rb.def.Right = append(rb.def.Right, s)
	return rb
}

// T appends a terminal to the right hand side of a rule.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.gb.intent[s] = terminalSym
	rb.def.Right = append(rb.def.Right, s)
	return rb
}

// End ends a rule.
func (rb *RuleBuilder) End() *GrammarBuilder {
	rb.gb.defs = append(rb.gb.defs, rb.def)
	return rb.gb
}

// Epsilon sets an epsilon right hand side and ends the rule.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	rb.def.Right = nil
	return rb.End()
}

// Grammar creates the grammar from the rules added so far.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	lhs := make(map[string]bool)
	for _, d := range gb.defs {
		lhs[d.Left] = true
	}
	for s, kind := range gb.intent {
		if kind == terminalSym && lhs[s] {
			return nil, fmt.Errorf("%w: terminal %q used as left hand side", lrc.ErrGrammar, s)
		}
		if kind == nonTerminalSym && !lhs[s] {
			return nil, fmt.Errorf("%w: non-terminal %q has no rules", lrc.ErrGrammar, s)
		}
	}
	return NewGrammar(gb.name, gb.defs, gb.opts...)
}
