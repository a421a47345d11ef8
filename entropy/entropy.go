// Package entropy defines candidate token interpretations and their confidence weights.
package entropy

import (
	"strconv"

	"github.com/wavelang/wfc/token"
)

// Confidence weights per token type:
const (
	EofConfidence        = 100
	StructuralConfidence = 95 // keywords, operators, punctuation
	LiteralConfidence    = 85
	IdentConfidence      = 80
	TriviaConfidence     = 70
	InvalidConfidence    = 10
)

// Confidence returns the base confidence weight for a token type, in [0, 100].
func Confidence(typ token.Type) int {
	switch typ {
	case token.EOF:
		return EofConfidence
	case token.Keyword, token.Operator, token.Punct:
		return StructuralConfidence
	case token.IntLiteral, token.FloatLiteral, token.StringLiteral:
		return LiteralConfidence
	case token.Identifier:
		return IdentConfidence
	case token.Whitespace, token.Comment:
		return TriviaConfidence
	default:
		return InvalidConfidence
	}
}

// State is one weighted candidate interpretation of a token.
// A State is immutable, created once per retained token (plus any alternates
// introduced by constraint expansion) and destroyed with its field.
type State struct {
	typ        token.Type
	label      string
	text       string
	value      Value
	confidence int
	src        string
	line, col  int
}

// Lift converts a token to its primary candidate state.
// Pure: the result depends only on the token content and the confidence table.
func Lift(t *token.Token) *State {
	return &State{
		typ:        t.Type(),
		label:      t.TypeName(),
		text:       t.Text(),
		value:      liftValue(t.Type(), t.Text()),
		confidence: Confidence(t.Type()),
		src:        t.SourceName(),
		line:       t.Line(),
		col:        t.Col(),
	}
}

// Derive creates an alternate candidate reading the token as another type,
// weighted by that type's confidence. Used by constraint expansion, e.g. a
// contextual keyword readable as an identifier.
func Derive(t *token.Token, as token.Type) *State {
	return &State{
		typ:        as,
		label:      as.String(),
		text:       t.Text(),
		value:      liftValue(as, t.Text()),
		confidence: Confidence(as),
		src:        t.SourceName(),
		line:       t.Line(),
		col:        t.Col(),
	}
}

func liftValue(typ token.Type, text string) Value {
	switch typ {
	case token.IntLiteral:
		i, e := strconv.ParseInt(text, 10, 64)
		if e == nil {
			return IntValue(i)
		}
	case token.FloatLiteral:
		f, e := strconv.ParseFloat(text, 64)
		if e == nil {
			return FloatValue(f)
		}
	case token.StringLiteral:
		s, e := strconv.Unquote(text)
		if e == nil {
			return TextValue(s)
		}
	case token.EOF:
		return NoneValue()
	default:
		return TextValue(text)
	}
	return TextValue(text)
}

func (s *State) Type() token.Type {
	return s.typ
}

func (s *State) Label() string {
	return s.label
}

// Text returns the original token text.
func (s *State) Text() string {
	return s.text
}

func (s *State) Value() Value {
	return s.value
}

// Confidence returns the base confidence weight in [0, 100].
func (s *State) Confidence() int {
	return s.confidence
}

func (s *State) SourceName() string {
	return s.src
}

func (s *State) Line() int {
	return s.line
}

func (s *State) Col() int {
	return s.col
}

// Token materializes the interpretation as a token at the original position.
func (s *State) Token() *token.Token {
	return token.New(s.typ, s.text, s.src, s.line, s.col)
}
