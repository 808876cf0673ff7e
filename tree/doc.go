/*
Package tree implements a default node factory for the LR driver, creating
homogeneous trees.

Every reduction creates a *Node, labeled with the non-terminal of the rule's
left hand side, with the rule's values as children: lrc.Token values for
terminals and nodes for non-terminals. Nodes with just a single child are
collapsed, i.e. the child takes the place of the node.

Clients configure which labels make up a root. A root label produces the
canonical *lrc.Program or, if registered with a language tag, a *lrc.LangProgram
to be lowered by a post-processor of the driver.

	b := tree.NewBuilder(tree.LangRoot("Program", "expr"))
	b.AddRewriter("Paren", dropParens)
	c, err := driver.NewCompiler(g, table, lexer, b.Factory)

Rewriters are called for nodes of a given label after their creation and may
return anything in place of the node.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrc.tree'.
func tracer() tracing.Trace {
	return tracing.Select("lrc.tree")
}
