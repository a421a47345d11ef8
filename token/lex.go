package token

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/wavelang/wfc"
)

// Error codes used by the tokenizer:
const (
	// WrongCharError indicates that no rule matches the input at current position.
	WrongCharError = wfc.LexicalErrors + iota
)

// Keywords that are always structural and are never reinterpreted.
var reservedWords = map[string]bool{
	"func":      true,
	"var":       true,
	"return":    true,
	"if":        true,
	"else":      true,
	"while":     true,
	"region":    true,
	"regime":    true,
	"collapse":  true,
	"superpose": true,
	"periscope": true,
}

// Regime-mode keywords; lexed as keywords but admissible as identifiers
// outside regime positions.
var contextualWords = map[string]bool{
	"fifo": true,
	"filo": true,
	"seq":  true,
	"rand": true,
}

// IsReserved reports whether text is a reserved keyword.
func IsReserved(text string) bool {
	return reservedWords[text]
}

// IsContextual reports whether text is a contextual keyword, one that may
// also be read as an identifier.
func IsContextual(text string) bool {
	return contextualWords[text]
}

var waveDef = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Float", Pattern: `[0-9]+\.[0-9]+`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Operator", Pattern: `==|!=|<=|>=|&&|\|\||[-+*/%<>=|&!]`},
		{Name: "Punct", Pattern: `[{}()\[\],;:.]`},
	},
})

var symbolNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string, len(waveDef.Symbols()))
	for name, typ := range waveDef.Symbols() {
		names[typ] = name
	}
	return names
}()

func wrongCharError(name string, line, col int, cause error) *wfc.Error {
	return wfc.NewError(WrongCharError, "cannot read token", name, line, col).WithDetail(cause.Error())
}

func classify(symbol, text string) Type {
	switch symbol {
	case "Comment":
		return Comment
	case "Whitespace":
		return Whitespace
	case "Float":
		return FloatLiteral
	case "Int":
		return IntLiteral
	case "String":
		return StringLiteral
	case "Ident":
		if reservedWords[text] || contextualWords[text] {
			return Keyword
		}
		return Identifier
	case "Operator":
		return Operator
	case "Punct":
		return Punct
	default:
		return Invalid
	}
}

// Lex tokenizes Wave source content, trivia included, EOF token appended.
// Returns nil and wfc.Error on a lexical error.
func Lex(name, content string) ([]*Token, error) {
	lx, e := waveDef.Lex(name, strings.NewReader(content))
	if e != nil {
		return nil, wrongCharError(name, 1, 1, e)
	}

	result := make([]*Token, 0)
	for {
		t, e := lx.Next()
		if e != nil {
			return nil, wrongCharError(name, t.Pos.Line, t.Pos.Column, e)
		}
		if t.EOF() {
			result = append(result, EofToken(name, t.Pos.Line, t.Pos.Column))
			return result, nil
		}

		typ := classify(symbolNames[t.Type], t.Value)
		result = append(result, New(typ, t.Value, name, t.Pos.Line, t.Pos.Column))
	}
}
