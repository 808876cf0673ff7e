package driver

import (
	"fmt"

	"github.com/npillmayer/lrc"
	"github.com/npillmayer/lrc/lr"
	"github.com/npillmayer/lrc/lr/scanner"
)

// NodeFactory creates a tree node for a reduction. lhs is the label of the rule's
// left hand side, children are the values the rule consumes (lrc.Token values for
// terminals, nodes from earlier calls for non-terminals), oldest first.
// ctx is shared by all calls within one compile run.
//
// For the augmented start rule's goal symbol, the factory has to return a
// *lrc.Program or a *lrc.LangProgram.
type NodeFactory func(lhs string, st lrc.SourceType, children []interface{}, ctx lrc.Context) (interface{}, error)

// PostProcessor rewrites a root tagged with a language. It returns either a
// *lrc.Program or another *lrc.LangProgram.
type PostProcessor func(*lrc.LangProgram) (interface{}, error)

// Compiler drives token streams through an LR action table.
// Create one with NewCompiler.
type Compiler struct {
	G         *lr.Grammar
	table     *lr.Table
	tokenizer scanner.Tokenizer
	factory   NodeFactory
	post      map[string]PostProcessor
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithPostProcessor registers a post-processor for roots tagged with lang.
func WithPostProcessor(lang string, p PostProcessor) Option {
	return func(c *Compiler) {
		c.post[lang] = p
	}
}

// NewCompiler creates a compiler for grammar g, given its action table, a tokenizer
// and a node factory. None of them may be nil.
func NewCompiler(g *lr.Grammar, table *lr.Table, tokenizer scanner.Tokenizer, factory NodeFactory,
	opts ...Option) (*Compiler, error) {
	//
	if g == nil || table == nil || tokenizer == nil || factory == nil {
		tracer().Errorf("compiler not initialized")
		return nil, fmt.Errorf("compiler needs grammar, action table, tokenizer and node factory")
	}
	c := &Compiler{
		G:         g,
		table:     table,
		tokenizer: tokenizer,
		factory:   factory,
		post:      make(map[string]PostProcessor),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CompileOption configures a single compile run.
type CompileOption func(*compileConfig)

type compileConfig struct {
	sourceType lrc.SourceType
}

// WithSourceType sets the source type flag handed to the node factory.
// Default is lrc.Script.
func WithSourceType(st lrc.SourceType) CompileOption {
	return func(conf *compileConfig) {
		conf.sourceType = st
	}
}

// Compile tokenizes and parses an input text and returns the canonical root
// of the resulting tree.
func (c *Compiler) Compile(input string, opts ...CompileOption) (*lrc.Program, error) {
	return c.Run(c.tokenizer.Tokenize(input), opts...)
}

// CompileScript is a shortcut for compiling input with source type lrc.Script.
func (c *Compiler) CompileScript(input string, opts ...CompileOption) (*lrc.Program, error) {
	opts = append(opts, WithSourceType(lrc.Script))
	return c.Compile(input, opts...)
}

// Run parses a token stream and returns the canonical root of the resulting tree.
// The token stream is consumed completely on success.
func (c *Compiler) Run(tokens scanner.TokenStream, opts ...CompileOption) (*lrc.Program, error) {
	conf := compileConfig{sourceType: lrc.Script}
	for _, opt := range opts {
		opt(&conf)
	}
	if !conf.sourceType.Valid() {
		return nil, fmt.Errorf("%w: %q", lrc.ErrSourceType, conf.sourceType)
	}
	r := &run{
		c:          c,
		sourceType: conf.sourceType,
		values:     make([]interface{}, 0, 64),
		states:     make([]int, 1, 64), // state 0 on top
		ctx:        lrc.Context{},
	}
	root, err := r.parse(tokens)
	if err != nil {
		return nil, err
	}
	return c.postProcess(root)
}

// --- Parse runs ------------------------------------------------------------

// run holds the state of a single compile run.
type run struct {
	c          *Compiler
	sourceType lrc.SourceType
	values     []interface{} // value stack: tokens and nodes
	states     []int         // state stack, parallel to values (plus state 0)
	pending    *reduction    // reduction waiting for its GOTO
	ctx        lrc.Context
	accepted   bool
}

// reduction is the result of a reduce action, waiting for its GOTO.
type reduction struct {
	lhs  *lr.Symbol
	node interface{}
}

// parse is the stack machine. A reduction does not push its result immediately,
// but parks it as pending. As long as there is a pending reduction, its
// left hand side is used instead of the lookahead token, and the table entry
// for it is the GOTO which moves it onto the value stack.
func (r *run) parse(tokens scanner.TokenStream) (interface{}, error) {
	g := r.c.G
	more := tokens.Next()
	for {
		if !more {
			if err := tokens.Err(); err != nil {
				return nil, err
			}
			if !r.accepted {
				return nil, fmt.Errorf("%w: token stream ended before input was accepted", lrc.ErrUnexpectedEOF)
			}
			break
		}
		token := tokens.Token()
		var key *lr.Symbol
		if r.pending != nil {
			key = r.pending.lhs
		} else {
			key = g.SymbolByName(token.Type)
		}
		state := r.states[len(r.states)-1]
		action, ok := r.c.table.Action(state, key)
		if !ok {
			return nil, r.syntaxError(state, token)
		}
		tracer().Debugf("action(%d,%s) = %s", state, key, action)
		switch {
		case !action.Reduce:
			if r.pending != nil { // GOTO after reduce
				r.values = append(r.values, r.pending.node)
				r.pending = nil
			} else { // shift
				r.values = append(r.values, token)
				more = tokens.Next()
			}
			r.states = append(r.states, action.Target)
		case action.IsAccept():
			r.accepted = true
			more = tokens.Next()
		default:
			if err := r.reduce(g.Rule(action.Target)); err != nil {
				return nil, err
			}
		}
	}
	if len(r.values) == 0 {
		return nil, fmt.Errorf("%w: no value", lrc.ErrWrongRoot)
	}
	return r.values[len(r.values)-1], nil
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Values for X1 to Xn are popped from the value stack and handed to the node
// factory, oldest first. Their states are popped as well.
func (r *run) reduce(rule *lr.Rule) error {
	n := rule.Len()
	if n > len(r.values) || r.pending != nil {
		return fmt.Errorf("%w: corrupt parse stack reducing %v", lrc.ErrSyntax, rule)
	}
	tracer().Debugf("reduce %v", rule)
	children := make([]interface{}, n)
	copy(children, r.values[len(r.values)-n:])
	r.values = r.values[:len(r.values)-n]
	r.states = r.states[:len(r.states)-n]
	node, err := r.c.factory(rule.LHS.Name, r.sourceType, children, r.ctx)
	if err != nil {
		return factoryError{rule: rule, err: err}
	}
	r.pending = &reduction{lhs: rule.LHS, node: node}
	return nil
}

// factoryError reports a failing node factory. It matches lrc.ErrNodeFactory
// and unwraps to the factory's own error.
type factoryError struct {
	rule *lr.Rule
	err  error
}

func (e factoryError) Error() string {
	return fmt.Sprintf("%s: rule %d (%v): %s", lrc.ErrNodeFactory, e.rule.Serial, e.rule, e.err)
}

func (e factoryError) Unwrap() error {
	return e.err
}

func (e factoryError) Is(target error) bool {
	return target == lrc.ErrNodeFactory
}

// A missing table entry is a syntax error. If it is missing for the
// end-of-input token, the input ended prematurely.
func (r *run) syntaxError(state int, token lrc.Token) error {
	if r.pending != nil {
		return fmt.Errorf("%w: no GOTO for %s in state %d", lrc.ErrSyntax, r.pending.lhs, state)
	}
	if token.IsEOF() {
		return fmt.Errorf("%w: at %s in state %d", lrc.ErrUnexpectedEOF, token.Loc.Start, state)
	}
	return fmt.Errorf("%w: unexpected %s %q at %s in state %d", lrc.ErrSyntax, token.Type,
		token.Lexeme(), token.Loc.Start, state)
}

// --- Post-processing -------------------------------------------------------

func (c *Compiler) postProcess(root interface{}) (*lrc.Program, error) {
	for {
		switch node := root.(type) {
		case *lrc.Program:
			if node == nil {
				return nil, fmt.Errorf("%w: nil program", lrc.ErrWrongRoot)
			}
			return node, nil
		case *lrc.LangProgram:
			if node == nil {
				return nil, fmt.Errorf("%w: nil language program", lrc.ErrWrongRoot)
			}
			post, ok := c.post[node.Lang]
			if !ok {
				return nil, fmt.Errorf("%w: %q", lrc.ErrUnprocessableLang, node.Lang)
			}
			tracer().Infof("post-processing language %q", node.Lang)
			next, err := post(node)
			if err != nil {
				return nil, fmt.Errorf("post-processing %q: %w", node.Lang, err)
			}
			root = next
		default:
			return nil, fmt.Errorf("%w: %T", lrc.ErrWrongRoot, root)
		}
	}
}
