// Package pattern defines grammar pattern nodes and the constraint pattern library.
package pattern

import (
	"github.com/wavelang/wfc"
	"github.com/wavelang/wfc/token"
)

// Error codes used by pattern constructors:
const (
	// EmptyCompositeError indicates a composite constructed with no sub-patterns.
	EmptyCompositeError = wfc.PatternErrors + iota

	// NilChildError indicates a composite constructed with a nil sub-pattern.
	NilChildError
)

func emptyCompositeError(name string) *wfc.Error {
	return wfc.FormatError(EmptyCompositeError, "pattern %q has no sub-patterns", name)
}

func nilChildError(name string, index int) *wfc.Error {
	return wfc.FormatError(NilChildError, "pattern %q has nil sub-pattern #%d", name, index)
}

// Kind discriminates the pattern tagged union.
type Kind int

const (
	Token Kind = iota
	Sequence
	Superposition
	Repetition
	Optional
	Group
	Reference
	Constraint
)

var kindNames = [...]string{
	Token:         "token",
	Sequence:      "sequence",
	Superposition: "superposition",
	Repetition:    "repetition",
	Optional:      "optional",
	Group:         "group",
	Reference:     "reference",
	Constraint:    "constraint",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "-unknown-"
	}
	return kindNames[k]
}

// ConstraintType tags a Constraint pattern for the propagation layer.
type ConstraintType int

const (
	// AdjacencyConstraint relates consecutive cells.
	AdjacencyConstraint ConstraintType = iota

	// RoleConstraint weights the admissible interpretations of a cell.
	RoleConstraint
)

// NeutralBias is the entropy bias that leaves candidate weights unchanged.
const NeutralBias = 1.0

// Pattern is one grammar rule node, terminal or composite.
// A Pattern is immutable after construction except for the collapsed flag
// and the match counter.
type Pattern struct {
	name      string
	kind      Kind
	subs      []*Pattern
	tokenType token.Type
	tokenText string // empty means any text
	refName   string
	bias      float64
	ctype     ConstraintType
	collapsed bool
	matches   int
}

// NewToken creates a pattern matching one token of the given type.
// Empty text matches any token of the type, non-empty text must match exactly.
func NewToken(name string, typ token.Type, text string) *Pattern {
	return &Pattern{name: name, kind: Token, tokenType: typ, tokenText: text, bias: NeutralBias}
}

func newComposite(name string, kind Kind, subs []*Pattern) (*Pattern, error) {
	if len(subs) == 0 {
		return nil, emptyCompositeError(name)
	}
	for i, s := range subs {
		if s == nil {
			return nil, nilChildError(name, i)
		}
	}
	return &Pattern{name: name, kind: kind, subs: subs, bias: NeutralBias}, nil
}

// NewSequence creates a pattern matching its sub-patterns consecutively in order.
func NewSequence(name string, subs ...*Pattern) (*Pattern, error) {
	return newComposite(name, Sequence, subs)
}

// NewSuperposition creates a pattern matching exactly one of its sub-patterns.
func NewSuperposition(name string, subs ...*Pattern) (*Pattern, error) {
	return newComposite(name, Superposition, subs)
}

// NewRepetition creates a pattern matching zero or more consecutive occurrences of sub.
func NewRepetition(name string, sub *Pattern) (*Pattern, error) {
	if sub == nil {
		return nil, nilChildError(name, 0)
	}
	return &Pattern{name: name, kind: Repetition, subs: []*Pattern{sub}, bias: NeutralBias}, nil
}

// NewOptional creates a pattern matching zero or one occurrence of sub.
func NewOptional(name string, sub *Pattern) (*Pattern, error) {
	if sub == nil {
		return nil, nilChildError(name, 0)
	}
	return &Pattern{name: name, kind: Optional, subs: []*Pattern{sub}, bias: NeutralBias}, nil
}

// NewReference creates a weak link to the pattern named target,
// resolved through the owning library at match time.
func NewReference(name, target string) *Pattern {
	return &Pattern{name: name, kind: Reference, refName: target, bias: NeutralBias}
}

// NewGroup creates a metadata wrapper around sub-patterns.
// The matching engine does not interpret groups.
func NewGroup(name string, subs ...*Pattern) (*Pattern, error) {
	return newComposite(name, Group, subs)
}

// NewConstraint creates a metadata wrapper carrying an entropy bias and a
// constraint type tag, consumed by the propagation layer, not the matcher.
func NewConstraint(name string, ctype ConstraintType, bias float64, subs ...*Pattern) (*Pattern, error) {
	p, e := newComposite(name, Constraint, subs)
	if e != nil {
		return nil, e
	}
	p.ctype = ctype
	p.bias = bias
	return p, nil
}

func (p *Pattern) Name() string {
	return p.name
}

func (p *Pattern) Kind() Kind {
	return p.kind
}

// Subs returns the ordered sub-pattern list, nil for terminal kinds.
func (p *Pattern) Subs() []*Pattern {
	return p.subs
}

func (p *Pattern) SubCount() int {
	return len(p.subs)
}

func (p *Pattern) TokenType() token.Type {
	return p.tokenType
}

// TokenText returns the exact text a Token pattern requires, empty for any.
func (p *Pattern) TokenText() string {
	return p.tokenText
}

// RefName returns the target name of a Reference pattern.
func (p *Pattern) RefName() string {
	return p.refName
}

func (p *Pattern) Bias() float64 {
	return p.bias
}

func (p *Pattern) ConstraintType() ConstraintType {
	return p.ctype
}

func (p *Pattern) Collapsed() bool {
	return p.collapsed
}

func (p *Pattern) SetCollapsed(collapsed bool) {
	p.collapsed = collapsed
}

// Matches returns how many times this pattern has matched a state.
func (p *Pattern) Matches() int {
	return p.matches
}

// CountMatch increments the match counter.
func (p *Pattern) CountMatch() {
	p.matches++
}
