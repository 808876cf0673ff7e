package lrc

import "errors"

// Errors of grammar and scanner construction.
var (
	ErrRepeatedClass     = errors.New("repeated token class")
	ErrDegeneratePattern = errors.New("degenerate token pattern")
	ErrPattern           = errors.New("invalid token pattern")
	ErrLookaheadWidth    = errors.New("neither LR(0) nor LR(1)")
	ErrGrammar           = errors.New("malformed grammar")
)

// Errors of a single compile run. All of them abort the run.
var (
	ErrLexical           = errors.New("no token class matches input")
	ErrSyntax            = errors.New("unknown code")
	ErrUnexpectedEOF     = errors.New("unexpected EOF")
	ErrWrongRoot         = errors.New("wrong root node type")
	ErrUnprocessableLang = errors.New("cannot process language")
	ErrSourceType        = errors.New("unsupported source type")
	ErrNodeFactory       = errors.New("node factory failed")
)
