package collapse

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/wavelang/wfc"
	"github.com/wavelang/wfc/entropy"
	"github.com/wavelang/wfc/pattern"
	"github.com/wavelang/wfc/token"
)

// Kind discriminates derived constraints.
type Kind int

const (
	// Adjacency requires a cell to be a valid continuation of the cells before it.
	Adjacency Kind = iota

	// Role requires a cell candidate to be part of the grammar's token vocabulary.
	Role
)

// Constraint is a relation compiled from the pattern graph restricting which
// candidate combinations are jointly valid; checked through the matching engine.
type Constraint struct {
	kind   Kind
	cell   int // left cell of an adjacency pair, -1 for field-wide constraints
	source *pattern.Pattern
	bias   float64
}

func (c *Constraint) Kind() Kind {
	return c.kind
}

// Cell returns the constrained cell index, -1 for field-wide constraints.
func (c *Constraint) Cell() int {
	return c.cell
}

// Source returns the pattern this constraint was derived from.
func (c *Constraint) Source() *pattern.Pattern {
	return c.source
}

func (c *Constraint) Bias() float64 {
	return c.bias
}

func anyRole(typ token.Type) string {
	return typ.String()
}

func exactRole(typ token.Type, text string) string {
	return typ.String() + ":" + text
}

// CreateConstraints derives the field constraints implied by every pattern
// reachable from the library's start pattern: one adjacency constraint per
// consecutive cell pair (a sequence constrains each cell to continue into
// the next), plus a field-wide role constraint built from the token
// vocabulary the grammar can accept at all. Constraint-kind patterns in the
// library contribute their entropy bias to candidate weighting.
// An unresolved reference fails derivation, never silently matches.
func (p *Propagator) CreateConstraints() error {
	if p.cells == nil {
		e := notInitializedError()
		p.record(e)
		return e
	}

	start := p.lib.Start()
	if start == nil {
		e := startNotFoundError(p.lib.StartName())
		p.record(e)
		return e
	}

	visited := set.New[string](p.lib.Len())
	roles := set.New[string](p.lib.Len())

	var walk func(pt *pattern.Pattern) *wfc.Error
	walk = func(pt *pattern.Pattern) *wfc.Error {
		if pt.Name() != "" {
			if visited.Contains(pt.Name()) {
				return nil
			}
			visited.Insert(pt.Name())
		}

		switch pt.Kind() {
		case pattern.Token:
			if pt.TokenText() == "" {
				roles.Insert(anyRole(pt.TokenType()))
			} else {
				roles.Insert(exactRole(pt.TokenType(), pt.TokenText()))
			}
			return nil

		case pattern.Reference:
			r := p.lib.Get(pt.RefName())
			if r == nil {
				return unresolvedReferenceError(pt)
			}
			return walk(r)

		case pattern.Group, pattern.Constraint:
			// metadata wrappers, not part of the matchable graph
			return nil

		default:
			for _, sub := range pt.Subs() {
				if e := walk(sub); e != nil {
					return e
				}
			}
			return nil
		}
	}

	if e := walk(start); e != nil {
		p.record(e)
		return e
	}

	p.constraints = make([]*Constraint, 0, len(p.cells)+1)
	for i := 0; i+1 < len(p.cells); i++ {
		p.constraints = append(p.constraints, &Constraint{kind: Adjacency, cell: i, source: start, bias: pattern.NeutralBias})
	}
	p.constraints = append(p.constraints, &Constraint{kind: Role, cell: -1, source: start, bias: pattern.NeutralBias})
	p.roles = roles

	p.biases = make(map[string]float64)
	for _, pt := range p.lib.Patterns() {
		if pt.Kind() != pattern.Constraint {
			continue
		}
		for _, sub := range pt.Subs() {
			if sub.Kind() != pattern.Token {
				continue
			}
			if sub.TokenText() == "" {
				p.biases[anyRole(sub.TokenType())] = pt.Bias()
			} else {
				p.biases[exactRole(sub.TokenType(), sub.TokenText())] = pt.Bias()
			}
		}
	}

	p.derived = true
	return nil
}

// Constraints returns the derived constraints.
func (p *Propagator) Constraints() []*Constraint {
	return p.constraints
}

// admissible reports whether the grammar's token vocabulary contains a role
// for the candidate at all.
func (p *Propagator) admissible(s *entropy.State) bool {
	if p.roles == nil {
		return true
	}
	return p.roles.Contains(anyRole(s.Type())) || p.roles.Contains(exactRole(s.Type(), s.Text()))
}

// weight returns the candidate confidence scaled by any constraint bias
// registered for its role.
func (p *Propagator) weight(s *entropy.State) float64 {
	w := float64(s.Confidence())
	if b, found := p.biases[exactRole(s.Type(), s.Text())]; found {
		return w * b
	}
	if b, found := p.biases[anyRole(s.Type())]; found {
		return w * b
	}
	return w
}
