/*
Package lr implements prerequisites for LR parsing: grammars, grammar
analysis and the construction of parser tables.

Building a Grammar

Grammars are specified using a grammar builder object, or as a plain list of
rule definitions. Every left hand side is a non-terminal, every other symbol
is a terminal, which corresponds to the label of a lexical class.
Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("Program").N("A").T("a").End()  // Program  ->  A a
    b.LHS("A").N("B").N("D").End()        // A  ->  B D
    b.LHS("B").T("b").End()               // B  ->  b
    b.LHS("B").Epsilon()                  // B  ->
    b.LHS("D").T("d").End()               // D  ->  d
    b.LHS("D").Epsilon()                  // D  ->
    g, err := b.Grammar()

This results in the following trivial grammar (g.Dump()):

   0: #start ::= [Program]
   1: Program ::= [A a]
   2: A ::= [B D]
   3: B ::= [b]
   4: B ::= []
   5: D ::= [d]
   6: D ::= []

Rule 0 is synthesized. Reducing it means accepting the input.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST sets
for all the symbols of the grammar.

    ga := lr.Analysis(g)
    ga.Grammar().EachNonTerminal(
        func(N *Symbol) interface{} {
            first, nullable := ga.First(N)
            fmt.Printf("FIRST(%s) = %v, ε=%v", N, first, nullable)
            return nil
        })

    // Output:
    FIRST(Program) = [a b d], ε=true
    FIRST(A) = [b d], ε=true

Parser Construction

Using grammar analysis as input, the canonical collection of LR item sets
is built and made available as a characteristic finite state machine (CFSM).
Items carry lookahead sets. Item sets with identical item cores are considered
equal, regardless of lookaheads: the first one reached wins.
The CFSM is then transformed into an ACTION table.

    lrgen, err := lr.NewTableGenerator(ga, lr.LookaheadWidth(1))
    lrgen.CreateTables()
    if lrgen.HasConflicts { ... }  // inspect lrgen.Conflicts()

Conflicting table entries are resolved by letting the entry written last win:
reductions are written before shifts. The CFSM can be exported to Graphviz's
Dot-format, the table to HTML.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrc.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrc.lr")
}
