package lr

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lrc"
	"github.com/npillmayer/lrc/lr/sparse"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     uint     // serial ID of this state
	items  *itemSet // configuration items within this state
	digest string   // structural hash of the item cores
	Accept bool     // is this an accepting state?
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.items.items {
		tracer().Debugf("  %s  %v", i, i.Lookahead())
	}
	tracer().Debugf("-------------------------")
}

// Items returns the items of a state, in closure order.
func (s *CFSMState) Items() []*Item {
	return s.items.items
}

// Create a state from an item set
func state(id uint, iset *itemSet) *CFSMState {
	return &CFSMState{ID: id, items: iset, digest: iset.digest()}
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.items {
		if i.rule.Serial == 0 && i.Complete() {
			return true
		}
	}
	return false
}

// Create an edge
func edge(from, to *CFSMState, label *Symbol) *cfsmEdge {
	return &cfsmEdge{
		from:  from,
		to:    to,
		label: label,
	}
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(int(c1.ID), int(c2.ID))
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// state diagram of the canonical collection of item sets. Will be constructed
// by a TableGenerator. Clients normally do not use it directly.
// Nevertheless, there are some methods defined on it, e.g, for debugging purposes.
type CFSM struct {
	g       *Grammar                // this CFSM is for Grammar g
	states  *treeset.Set            // all the states
	edges   *arraylist.List         // all the edges between states, in order of creation
	byItems map[string][]*CFSMState // states by digest of item cores
	S0      *CFSMState              // start state
	cfsmIds uint                    // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	c.byItems = make(map[string][]*CFSMState)
	return c
}

// Add a new state to the CFSM.
func (c *CFSM) addState(iset *itemSet) *CFSMState {
	s := state(c.cfsmIds, iset)
	c.cfsmIds++
	c.states.Add(s)
	c.byItems[s.digest] = append(c.byItems[s.digest], s)
	return s
}

// Find a CFSM state by the contained item set. Lookaheads do not count.
func (c *CFSM) findStateByItems(iset *itemSet) *CFSMState {
	for _, s := range c.byItems[iset.digest()] {
		if s.items.equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := edge(s0, s1, sym)
	c.edges.Add(e)
	return e
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// StateCount returns the number of states.
func (c *CFSM) StateCount() int {
	return c.states.Size()
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id uint) *CFSMState {
	found, s := c.states.Find(func(_ int, x interface{}) bool {
		return x.(*CFSMState).ID == id
	})
	if found < 0 {
		return nil
	}
	return s.(*CFSMState)
}

// Goto returns the target state of the transition from s over A, or nil.
func (c *CFSM) Goto(s *CFSMState, A *Symbol) *CFSMState {
	for _, e := range c.allEdges(s) {
		if e.label == A {
			return e.to
		}
	}
	return nil
}

// Construct the characteristic finite state machine CFSM for a grammar.
//
// States are processed in order of their IDs. For every symbol after a dot
// we compute the goto-set. If a state with equal item cores already exists, the
// new item set is discarded (together with its lookaheads) and the transition
// goes to the existing state.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	closure0 := lrgen.ga.closure([]*Item{StartItem(G)})
	cfsm.S0 = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		for _, A := range s.items.symbolsAfterDot() {
			tracer().Debugf("checking goto-set for symbol = %v", A)
			gotoset := lrgen.ga.gotoSetClosure(s.items, A)
			snew := cfsm.findStateByItems(gotoset)
			if snew == nil {
				snew = cfsm.addState(gotoset)
				S.Add(snew)
				if snew.containsCompletedStartRule() {
					snew.Accept = true
				}
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
		tracer().Debugf("-----------------------------------------------------------------")
	}
	return cfsm
}

// ToGraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) ToGraphViz(w io.Writer) error {
	var b bytes.Buffer
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, x := range c.states.Values() {
		s := x.(*CFSMState)
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID,
			escapeDot(edge.label.Name))
	}
	b.WriteString("}\n")
	_, err := w.Write(b.Bytes())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *itemSet) string {
	var b bytes.Buffer
	for k, i := range S.items {
		if k > 0 {
			b.WriteString("\\l")
		}
		b.WriteString(escapeDot(i.String()))
	}
	b.WriteString("\\l")
	return b.String()
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`,
	`<`, `\<`, `>`, `\>`, `[`, `\[`, `]`, `\]`)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}

// === Table generation ======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and the action table for an LR-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	k            int
	dfa          *CFSM
	actiontable  *Table
	HasConflicts bool
}

// Option configures a table generator.
type Option func(*TableGenerator)

// LookaheadWidth sets the width of lookahead, which must be 0 or 1.
// Default is 1.
//
// The width is validated, but does not change table construction: lookaheads
// are always propagated into item sets.
func LookaheadWidth(k int) Option {
	return func(lrgen *TableGenerator) {
		lrgen.k = k
	}
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
// It returns an error for an unsupported lookahead width.
func NewTableGenerator(ga *LRAnalysis, opts ...Option) (*TableGenerator, error) {
	lrgen := &TableGenerator{k: 1}
	for _, opt := range opts {
		opt(lrgen)
	}
	if lrgen.k != 0 && lrgen.k != 1 {
		return nil, fmt.Errorf("%w: lookahead width %d", lrc.ErrLookaheadWidth, lrgen.k)
	}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen, nil
}

// BuildTables is a shortcut for analysing grammar g, creating a table generator
// and creating the tables.
func BuildTables(g *Grammar, opts ...Option) (*TableGenerator, error) {
	lrgen, err := NewTableGenerator(Analysis(g), opts...)
	if err != nil {
		return nil, err
	}
	lrgen.CreateTables()
	return lrgen, nil
}

// LookaheadWidth returns the configured lookahead width (0 or 1).
func (lrgen *TableGenerator) LookaheadWidth() int {
	return lrgen.k
}

// Grammar returns the grammar the tables are generated for.
func (lrgen *TableGenerator) Grammar() *Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Conflicts returns all the table entries which have been overwritten during
// table construction.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	if lrgen.actiontable == nil {
		return nil
	}
	return lrgen.actiontable.conflicts
}

// CreateTables creates the CFSM and the action table.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.CFSM()
	lrgen.actiontable = lrgen.buildActionTable()
	lrgen.HasConflicts = len(lrgen.actiontable.conflicts) > 0
}

// AcceptingStates returns all states of the CFSM which contain the completed
// start rule. Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []uint {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	acc := make([]uint, 0, 1)
	for _, x := range lrgen.dfa.states.Values() {
		if state := x.(*CFSMState); state.Accept {
			acc = append(acc, state.ID)
		}
	}
	return acc
}

// For building an ACTION table we iterate over all the states of the CFSM.
// First, every complete item produces a reduce entry for each of its lookaheads,
// in item order. Then every transition of the state produces a shift entry for
// its label (for non-terminals this is the GOTO after a reduction), in order of
// creation.
//
// A later entry silently replaces an earlier one for the same state and symbol.
// Replacements are recorded as conflicts, but never rejected.
func (lrgen *TableGenerator) buildActionTable() *Table {
	statescnt := lrgen.dfa.states.Size()
	symcnt := lrgen.g.SymbolCount()
	tracer().Infof("ACTION table of size %d x %d", statescnt, symcnt)
	actions := &Table{
		g:      lrgen.g,
		matrix: sparse.NewIntMatrix(statescnt, symcnt, sparse.DefaultNullValue),
	}
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.items.items {
			if !i.Complete() {
				continue
			}
			for _, la := range i.Lookahead() {
				actions.set(state.ID, lrgen.g.symbols[la], Action{Reduce: true, Target: i.rule.Serial})
			}
		}
		for _, e := range lrgen.dfa.allEdges(state) {
			actions.set(state.ID, e.label, Action{Target: int(e.to.ID)})
		}
	}
	return actions
}

// === Action table ==========================================================

// Action is an entry of the action table. It is either a shift to a target state
// or a reduction by a rule. Reducing rule 0 means accepting the input.
type Action struct {
	Reduce bool
	Target int // target state for shifts, rule serial for reductions
}

// IsAccept is true for reductions by rule 0.
func (a Action) IsAccept() bool {
	return a.Reduce && a.Target == 0
}

func (a Action) String() string {
	if a.IsAccept() {
		return "<accept>"
	} else if a.Reduce {
		return fmt.Sprintf("<reduce %d>", a.Target)
	}
	return fmt.Sprintf("<shift %d>", a.Target)
}

// Shifts are encoded as negative values, reductions as rule numbers.
func (a Action) encode() int32 {
	if a.Reduce {
		return int32(a.Target)
	}
	return int32(-a.Target - 1)
}

func decode(v int32) Action {
	if v >= 0 {
		return Action{Reduce: true, Target: int(v)}
	}
	return Action{Target: int(-v - 1)}
}

// Conflict records an action table entry which has been overwritten by a
// later one.
type Conflict struct {
	State  uint
	Symbol *Symbol
	Old    Action
	New    Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d on %s: %s replaced by %s", c.State, c.Symbol, c.Old, c.New)
}

// Table is the action table of an LR parser, indexed by state ID and symbol value.
// A table is immutable after construction and may be shared between parsers.
type Table struct {
	g         *Grammar
	matrix    *sparse.IntMatrix
	conflicts []Conflict
}

func (t *Table) set(state uint, A *Symbol, a Action) {
	old := t.matrix.Set(int(state), A.Value, a.encode())
	if old == t.matrix.NullValue() || old == a.encode() {
		tracer().Debugf("    action(%d,%s) = %s", state, A, a)
		return
	}
	c := Conflict{State: state, Symbol: A, Old: decode(old), New: a}
	tracer().Infof("table conflict: %s", c)
	t.conflicts = append(t.conflicts, c)
}

// Action returns the action for a state and a symbol. If there is no entry,
// false is returned.
func (t *Table) Action(state int, A *Symbol) (Action, bool) {
	if A == nil || state < 0 || state >= t.matrix.M() {
		return Action{}, false
	}
	v := t.matrix.Value(state, A.Value)
	if v == t.matrix.NullValue() {
		return Action{}, false
	}
	return decode(v), true
}

// StateCount returns the number of rows of the table.
func (t *Table) StateCount() int {
	return t.matrix.M()
}

// EntryCount returns the number of entries of the table.
func (t *Table) EntryCount() int {
	return t.matrix.ValueCount()
}

// ActionTableAsHTML exports the ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return fmt.Errorf("ACTION table not yet created")
	}
	table := lrgen.actiontable
	var b bytes.Buffer
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "ACTION table of size = %d<p>", table.EntryCount())
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range lrgen.g.symbols {
		fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(A.Name))
	}
	b.WriteString("</tr>\n")
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		fmt.Fprintf(&b, "<tr><td>state %d</td>\n", state.ID)
		for _, A := range lrgen.g.symbols {
			td := "&nbsp;"
			if a, ok := table.Action(int(state.ID), A); ok {
				td = html.EscapeString(a.String())
			}
			b.WriteString("<td>")
			b.WriteString(td)
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := w.Write(b.Bytes())
	return err
}
