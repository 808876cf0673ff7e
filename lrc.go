package lrc

import "fmt"

// --- Tokens ----------------------------------------------------------------

// EOF is the token type of the end-of-input token. It is reserved and may not
// be used as a label for a lexical class or a grammar symbol.
const EOF = "#eof"

// Position is a line/column pair within a source text. Lines start at 1,
// columns start at 0.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location captures the source text of a token and the positions it spans.
type Location struct {
	Source string   // lexeme as it appeared in the input
	Start  Position // position of the first character
	End    Position // position just behind the last character
}

func (loc Location) String() string {
	return fmt.Sprintf("(%s…%s)", loc.Start, loc.End)
}

// Token represents an input token. Tokens are produced by a scanner and
// reflect terminals in a grammar.
//
// An example would be a token for a floating point numer:
//
//    Type = "float"                           // label of a lexical class
//    Loc  = { "3.1416", 1:67, 1:73 }          // lexeme and position in the input
//
// Tokens are immutable values.
type Token struct {
	Type string
	Loc  Location
}

// IsEOF is true for the end-of-input token.
func (t Token) IsEOF() bool {
	return t.Type == EOF
}

// Lexeme returns the source text of a token.
func (t Token) Lexeme() string {
	return t.Loc.Source
}

func (t Token) String() string {
	if t.IsEOF() {
		return fmt.Sprintf("<%s %s>", EOF, t.Loc.Start)
	}
	return fmt.Sprintf("<%s %q %s>", t.Type, t.Loc.Source, t.Loc)
}

// --- Source types ----------------------------------------------------------

// SourceType is a flag handed to every node factory call, telling it which
// kind of source unit is being compiled.
type SourceType string

// Recognized source types.
const (
	Script SourceType = "script"
	Module SourceType = "module"
)

// Valid is true for the recognized source types.
func (st SourceType) Valid() bool {
	return st == Script || st == Module
}

// --- Root nodes ------------------------------------------------------------

// Tree nodes are opaque to the parser driver, with two exceptions: the value left
// on the stack after accepting the input has to be either a *Program (the canonical
// root) or a *LangProgram (a root still tagged with a language which requires
// post-processing). Any other shape is an error.

// Program is the canonical root of a compiled tree.
type Program struct {
	SourceType SourceType
	Body       []interface{}
}

// LangProgram is a root tagged with a language identifier. A post-processor
// registered for Lang has to turn it into a *Program or into another *LangProgram.
type LangProgram struct {
	SourceType SourceType
	Lang       string
	Body       []interface{}
}

func (p *Program) String() string {
	return fmt.Sprintf("(Program %s |%d|)", p.SourceType, len(p.Body))
}

func (p *LangProgram) String() string {
	return fmt.Sprintf("(Program:%s %s |%d|)", p.Lang, p.SourceType, len(p.Body))
}

// --- Parse context ---------------------------------------------------------

// Context is a mutable value handed to every node factory call of a single
// compile run. A new Context is created for every run and dropped afterwards.
type Context map[string]interface{}

// Get returns the value for key, or nil.
func (ctx Context) Get(key string) interface{} {
	if ctx == nil {
		return nil
	}
	return ctx[key]
}

// Set stores a value for key.
func (ctx Context) Set(key string, value interface{}) {
	ctx[key] = value
}
