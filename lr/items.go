package lr

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
)

// === Items =================================================================

// Item is an LR item: a rule, a dot position within its RHS, and a set of
// lookahead terminals. Items with the dot at the end of the RHS are ready for
// reduction.
//
// Two items are considered the same item if rule and dot are identical.
// Lookahead sets never count for item identity; they are merged instead.
type Item struct {
	rule *Rule
	dot  int
	la   *treeset.Set // lookahead symbol values
}

// StartItem returns the item [#start ::= • Program] with lookahead {#eof}.
func StartItem(g *Grammar) *Item {
	return &Item{
		rule: g.rules[0],
		dot:  0,
		la:   treeset.NewWithIntComparator(g.EOF().Value),
	}
}

// Rule returns the rule of an item.
func (i *Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position of an item.
func (i *Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil if the item is complete.
func (i *Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Rest returns the symbols of the RHS after the dot.
func (i *Item) Rest() []*Symbol {
	return i.rule.rhs[i.dot:]
}

// Prefix returns the symbols of the RHS before the dot.
func (i *Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

// Complete is true if the dot is behind the complete RHS.
func (i *Item) Complete() bool {
	return i.dot >= len(i.rule.rhs)
}

// Lookahead returns the values of the lookahead symbols of an item, sorted.
func (i *Item) Lookahead() []int {
	r := make([]int, 0, i.la.Size())
	for _, v := range i.la.Values() {
		r = append(r, v.(int))
	}
	return r
}

func (i *Item) advance() *Item {
	return &Item{
		rule: i.rule,
		dot:  i.dot + 1,
		la:   treeset.NewWithIntComparator(i.la.Values()...),
	}
}

func (i *Item) core() itemCore {
	return itemCore{Rule: i.rule.Serial, Dot: i.dot}
}

func (i *Item) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s ::=", i.rule.LHS)
	for k, A := range i.rule.rhs {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if i.Complete() {
		b.WriteString(" •")
	}
	b.WriteString("]")
	return b.String()
}

// === Item sets =============================================================

// itemCore identifies an item within an item set. Fields are exported for
// structhash.
type itemCore struct {
	Rule int
	Dot  int
}

type coreKey struct {
	Cores []itemCore
}

// itemSet is an ordered set of items. Order matters: it is the order in which
// reduce entries are written to the action table.
type itemSet struct {
	items []*Item
	index map[itemCore]int
}

func newItemSet() *itemSet {
	return &itemSet{index: make(map[itemCore]int)}
}

func (S *itemSet) add(i *Item) {
	S.index[i.core()] = len(S.items)
	S.items = append(S.items, i)
}

func (S *itemSet) find(c itemCore) *Item {
	if k, ok := S.index[c]; ok {
		return S.items[k]
	}
	return nil
}

// Size returns the number of items.
func (S *itemSet) Size() int {
	return len(S.items)
}

// equals compares item cores only, ignoring lookaheads.
func (S *itemSet) equals(other *itemSet) bool {
	if len(S.items) != len(other.items) {
		return false
	}
	for _, i := range other.items {
		if S.find(i.core()) == nil {
			return false
		}
	}
	return true
}

// digest is a structural hash over the (sorted) item cores of S. Item sets
// which are equal have equal digests.
func (S *itemSet) digest() string {
	key := coreKey{Cores: make([]itemCore, len(S.items))}
	for k, i := range S.items {
		key.Cores[k] = i.core()
	}
	sort.Slice(key.Cores, func(a, b int) bool {
		ca, cb := key.Cores[a], key.Cores[b]
		return ca.Rule < cb.Rule || ca.Rule == cb.Rule && ca.Dot < cb.Dot
	})
	h, err := structhash.Hash(key, 1)
	if err != nil { // cannot happen for plain structs
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return h
}

// symbolsAfterDot returns the distinct symbols immediately after a dot, in the
// order of the items they appear in.
func (S *itemSet) symbolsAfterDot() []*Symbol {
	seen := make(map[*Symbol]bool)
	var syms []*Symbol
	for _, i := range S.items {
		if A := i.PeekSymbol(); A != nil && !seen[A] {
			seen[A] = true
			syms = append(syms, A)
		}
	}
	return syms
}

func (S *itemSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for k, i := range S.items {
		if k > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// === Closure and Goto-Set Operations =======================================

// closure computes the closure of a kernel of items. For every item with a
// non-terminal A after the dot, an item [A ::= • α] is added for every rule
// of A, with lookahead FIRST(rest behind A) seeded with the lookahead of the
// originating item. Items already present get the lookaheads merged in.
//
// We iterate until neither new items nor new lookaheads are produced.
func (ga *LRAnalysis) closure(kernel []*Item) *itemSet {
	C := newItemSet()
	for _, i := range kernel {
		if ex := C.find(i.core()); ex != nil {
			ex.la.Add(i.la.Values()...)
			continue
		}
		C.add(i)
	}
	for changed := true; changed; {
		changed = false
		for k := 0; k < len(C.items); k++ { // C.items may grow
			item := C.items[k]
			A := item.PeekSymbol()
			if A == nil || A.IsTerminal() {
				continue
			}
			la := ga.lookaheadFor(item.rule.rhs[item.dot+1:], item.la)
			for _, r := range ga.g.RulesFor(A) {
				if ex := C.find(itemCore{Rule: r.Serial, Dot: 0}); ex != nil {
					for _, v := range la.Values() {
						changed = addValue(ex.la, v.(int)) || changed
					}
					continue
				}
				C.add(&Item{
					rule: r,
					dot:  0,
					la:   treeset.NewWithIntComparator(la.Values()...),
				})
			}
		}
	}
	return C
}

// gotoSet advances the dot over A for all items of S with A after the dot.
// The result is not closed.
func (ga *LRAnalysis) gotoSet(S *itemSet, A *Symbol) []*Item {
	var kernel []*Item
	for _, i := range S.items {
		if i.PeekSymbol() == A {
			ii := i.advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			kernel = append(kernel, ii)
		}
	}
	return kernel
}

func (ga *LRAnalysis) gotoSetClosure(S *itemSet, A *Symbol) *itemSet {
	gclosure := ga.closure(ga.gotoSet(S, A))
	tracer().Debugf("goto(%s) --%s--> %s", S, A, gclosure)
	return gclosure
}
