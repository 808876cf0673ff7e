/*
Package driver executes LR action tables against token streams.

A Compiler bundles a grammar, its action table, a tokenizer and a node
factory. The node factory is called for every reduction, with the label of
the rule's left hand side and the values the reduction consumes: tokens and
values of earlier reductions, oldest first.

	lrgen, err := lr.BuildTables(g)
	lexer, err := scanner.NewLexer(classes)
	c, err := driver.NewCompiler(g, lrgen.ActionTable(), lexer, factory,
		driver.WithPostProcessor("sql", lowerSQL))
	program, err := c.Compile("…", driver.WithSourceType(lrc.Module))

The value left after accepting the input has to be a *lrc.Program or a
*lrc.LangProgram. As long as the root is tagged with a language, the
post-processor registered for this language is called and its result
replaces the root. This enables staged lowering of embedded languages.

A Compiler is immutable and may be used concurrently; each compile run
owns its stacks and its lrc.Context.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package driver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrc.driver'.
func tracer() tracing.Trace {
	return tracing.Select("lrc.driver")
}
