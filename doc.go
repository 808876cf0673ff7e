/*
Package lrc is an LR parser construction and execution toolbox.

Clients describe a language by an ordered list of lexical classes and a list of
context-free production rules. From these, lrc builds a canonical LR automaton
and drives token streams through it, calling a client supplied node factory at
every reduction. Package structure is as follows:

■ lr: Package lr implements grammars, FIRST-set analysis, LR item sets and the
construction of the characteristic automaton together with its action table.

■ lr/scanner: Package scanner implements a lexer driven by ordered regular
expressions, where the first matching class wins. Sub-package lexmach
offers an alternative tokenizer based on lexmachine.

■ lr/driver: Package driver executes an action table against a token stream
and assembles a tree, followed by optional per-language post-processing.

■ tree: Package tree provides a default node factory for homogenous trees.

■ cmd/lrc: A command line tool for experiments with an expression grammar.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrc
