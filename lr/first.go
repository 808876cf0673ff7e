package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// LRAnalysis is an object for grammar analysis (computing FIRST sets). Create
// one with Analysis(g).
type LRAnalysis struct {
	g      *Grammar
	first  map[*Symbol]*treeset.Set // FIRST set per non-terminal, by symbol value
	rounds int                      // iterations until fixpoint
}

// Analysis creates an analyser for a grammar and computes the FIRST sets of
// all its symbols.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:     g,
		first: make(map[*Symbol]*treeset.Set),
	}
	ga.computeFirst()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns the FIRST set of a symbol, together with a flag indicating
// whether epsilon is a member of the set.
// The FIRST set of a terminal is the terminal itself.
func (ga *LRAnalysis) First(A *Symbol) ([]*Symbol, bool) {
	if A == nil {
		return nil, false
	}
	if A.IsTerminal() {
		return []*Symbol{A}, false
	}
	F := ga.first[A]
	if F == nil {
		return nil, false
	}
	nullable := false
	r := make([]*Symbol, 0, F.Size())
	for _, v := range F.Values() {
		if v.(int) == epsilonValue {
			nullable = true
			continue
		}
		r = append(r, ga.g.symbols[v.(int)])
	}
	return r, nullable
}

// Nullable returns true if epsilon is in FIRST(A).
func (ga *LRAnalysis) Nullable(A *Symbol) bool {
	if A == nil || A.IsTerminal() {
		return false
	}
	F := ga.first[A]
	return F != nil && F.Contains(epsilonValue)
}

// Fixed-point iteration over all the rules. For an epsilon-rule, epsilon
// is added to FIRST(LHS). Otherwise the RHS is scanned from left to right:
// a terminal is added and stops the scan, a non-terminal contributes its
// complete FIRST set, epsilon included, and the scan continues only if
// epsilon is in it. Epsilon in FIRST(LHS) therefore does not imply that
// LHS derives the empty word.
// FIRST sets only grow and are bounded by the number of terminals, so the
// iteration terminates.
func (ga *LRAnalysis) computeFirst() {
	for _, N := range ga.g.nonterminals {
		ga.first[N] = treeset.NewWithIntComparator()
	}
	for changed := true; changed; {
		changed = false
		ga.rounds++
		for _, r := range ga.g.rules {
			F := ga.first[r.LHS]
			if r.IsEps() {
				changed = addValue(F, epsilonValue) || changed
				continue
			}
			for _, A := range r.rhs {
				if A.IsTerminal() {
					changed = addValue(F, A.Value) || changed
					break
				}
				for _, v := range ga.first[A].Values() {
					changed = addValue(F, v.(int)) || changed
				}
				if !ga.first[A].Contains(epsilonValue) {
					break
				}
			}
		}
	}
	tracer().Debugf("FIRST sets of %s computed in %d rounds", ga.g.Name, ga.rounds)
}

// lookaheadFor computes the lookahead set for items derived from an item
// with a non-terminal after the dot. rest is the remainder of the item's RHS
// behind that non-terminal, tail is the item's own lookahead set.
//
// The result is always seeded with tail, then FIRST(rest) is added.
func (ga *LRAnalysis) lookaheadFor(rest []*Symbol, tail *treeset.Set) *treeset.Set {
	la := treeset.NewWithIntComparator(tail.Values()...)
	for _, A := range rest {
		if A.IsTerminal() {
			la.Add(A.Value)
			return la
		}
		for _, v := range ga.first[A].Values() {
			if v.(int) != epsilonValue {
				la.Add(v)
			}
		}
		if !ga.first[A].Contains(epsilonValue) {
			return la
		}
	}
	return la
}

func addValue(S *treeset.Set, v int) bool {
	if S.Contains(v) {
		return false
	}
	S.Add(v)
	return true
}
