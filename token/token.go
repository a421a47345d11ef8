// Package token defines the Wave token model consumed by the resolution engine.
package token

// Type is the coarse token kind assigned by the tokenizer.
type Type int

const (
	EOF Type = iota
	Keyword
	Identifier
	IntLiteral
	FloatLiteral
	StringLiteral
	Operator
	Punct
	Whitespace
	Comment
	Invalid
)

var typeNames = [...]string{
	EOF:           "-end-of-file-",
	Keyword:       "keyword",
	Identifier:    "identifier",
	IntLiteral:    "int-literal",
	FloatLiteral:  "float-literal",
	StringLiteral: "string-literal",
	Operator:      "operator",
	Punct:         "punct",
	Whitespace:    "whitespace",
	Comment:       "comment",
	Invalid:       "-invalid-",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "-unknown-"
	}
	return typeNames[t]
}

// IsTrivia reports whether tokens of this type are dropped before resolution.
func (t Type) IsTrivia() bool {
	return t == Whitespace || t == Comment
}

// Token is one lexeme with its source position.
type Token struct {
	typ       Type
	text      string
	src       string
	line, col int
}

// New creates a token.
func New(typ Type, text, src string, line, col int) *Token {
	return &Token{typ, text, src, line, col}
}

// EofToken creates the end-of-file token for a source.
func EofToken(src string, line, col int) *Token {
	return &Token{typ: EOF, src: src, line: line, col: col}
}

func (t *Token) Type() Type {
	return t.typ
}

func (t *Token) TypeName() string {
	return t.typ.String()
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) SourceName() string {
	return t.src
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

func (t *Token) IsTrivia() bool {
	return t.typ.IsTrivia()
}

// Filter returns the non-trivia subsequence of tokens, order preserved.
func Filter(tokens []*Token) []*Token {
	result := make([]*Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsTrivia() {
			result = append(result, t)
		}
	}
	return result
}
