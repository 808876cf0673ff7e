package tree

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/lrc"
	"github.com/npillmayer/lrc/lr"
)

// Node is a node of a homogeneous tree. Children are either lrc.Token values
// or other nodes, or whatever a rewriter put in their place.
type Node struct {
	Label    string
	Children []interface{}
}

// String returns the tree as a nested list, with leaf tokens shown by their lexeme.
func (n *Node) String() string {
	var b strings.Builder
	writeList(&b, n)
	return b.String()
}

func writeList(b *strings.Builder, x interface{}) {
	switch v := x.(type) {
	case *Node:
		b.WriteString("(")
		b.WriteString(v.Label)
		for _, ch := range v.Children {
			b.WriteString(" ")
			writeList(b, ch)
		}
		b.WriteString(")")
	case lrc.Token:
		b.WriteString(v.Lexeme())
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

// Rewriter rewrites the node created for a non-terminal. Its return value
// replaces the node in the tree.
type Rewriter func(n *Node, ctx lrc.Context) (interface{}, error)

// Builder creates homogeneous trees from reductions. Its Factory method is
// to be used as a node factory for the driver.
type Builder struct {
	roots     map[string]string // root label -> language tag, "" for canonical roots
	rewriters map[string]Rewriter
	collapse  bool
}

// Option configures a Builder.
type Option func(*Builder)

// Root makes label produce a canonical root.
func Root(label string) Option {
	return func(b *Builder) {
		b.roots[label] = ""
	}
}

// LangRoot makes label produce a root tagged with language lang.
func LangRoot(label string, lang string) Option {
	return func(b *Builder) {
		b.roots[label] = lang
	}
}

// KeepChains switches off collapsing of single-child nodes.
func KeepChains() Option {
	return func(b *Builder) {
		b.collapse = false
	}
}

// NewBuilder creates a tree builder. Without root options, lr.DefaultGoal is
// configured to produce a canonical root.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		roots:     make(map[string]string),
		rewriters: make(map[string]Rewriter),
		collapse:  true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.roots) == 0 {
		b.roots[lr.DefaultGoal] = ""
	}
	return b
}

// AddRewriter adds a rewriter for nodes labeled with a non-terminal.
func (b *Builder) AddRewriter(label string, rew Rewriter) {
	if rew != nil {
		tracer().Infof("adding rewriter for %s", label)
		b.rewriters[label] = rew
	}
}

// Factory creates a tree node for a reduction. It has the signature of
// driver.NodeFactory.
//
// Root labels create a root with the children as body. Otherwise a node is
// created and handed to a rewriter, if one is registered for lhs. Nodes with a
// single child are replaced by the child, unless a rewriter is present.
func (b *Builder) Factory(lhs string, st lrc.SourceType, children []interface{}, ctx lrc.Context) (interface{}, error) {
	if lang, ok := b.roots[lhs]; ok {
		tracer().Debugf("root %s with |body| = %d", lhs, len(children))
		if lang == "" {
			return &lrc.Program{SourceType: st, Body: children}, nil
		}
		return &lrc.LangProgram{SourceType: st, Lang: lang, Body: children}, nil
	}
	n := &Node{Label: lhs, Children: children}
	if rew, ok := b.rewriters[lhs]; ok {
		return rew(n, ctx)
	}
	if b.collapse && len(children) == 1 {
		return children[0], nil
	}
	return n, nil
}

// Walk visits a tree top-down, left to right, calling visit for every node
// and leaf together with its depth. Bodies of roots are visited at depth 1.
// If visit returns false, the children of the current node are skipped.
func Walk(root interface{}, visit func(x interface{}, depth int) bool) {
	type entry struct {
		x     interface{}
		depth int
	}
	stack := arraystack.New()
	stack.Push(entry{root, 0})
	for !stack.Empty() {
		top, _ := stack.Pop()
		e := top.(entry)
		if !visit(e.x, e.depth) {
			continue
		}
		children := Children(e.x)
		for i := len(children) - 1; i >= 0; i-- { // leftmost child on top
			stack.Push(entry{children[i], e.depth + 1})
		}
	}
}

// Children returns the children of a node or the body of a root.
// Leafs have no children.
func Children(x interface{}) []interface{} {
	switch v := x.(type) {
	case *Node:
		return v.Children
	case *lrc.Program:
		return v.Body
	case *lrc.LangProgram:
		return v.Body
	}
	return nil
}

// Label returns a short display label for a tree node, root or leaf.
func Label(x interface{}) string {
	switch v := x.(type) {
	case *Node:
		return v.Label
	case lrc.Token:
		return fmt.Sprintf("%s %q", v.Type, v.Lexeme())
	}
	return fmt.Sprintf("%v", x)
}
