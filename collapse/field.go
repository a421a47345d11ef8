package collapse

import (
	"github.com/wavelang/wfc/entropy"
	"github.com/wavelang/wfc/token"
)

// Cell is one token position in the entropy field, holding the set of
// currently viable candidate interpretations of its token.
type Cell struct {
	index     int
	tok       *token.Token
	states    []*entropy.State
	collapsed bool
}

// Index returns the cell position in the field, counting retained tokens only.
func (c *Cell) Index() int {
	return c.index
}

// Token returns the source token this cell interprets.
func (c *Cell) Token() *token.Token {
	return c.tok
}

// Entropy returns the count of viable candidates.
func (c *Cell) Entropy() int {
	return len(c.states)
}

// Candidates returns the viable candidates in declaration order.
func (c *Cell) Candidates() []*entropy.State {
	return c.states
}

// Collapsed reports whether the cell has been committed to one candidate.
func (c *Cell) Collapsed() bool {
	return c.collapsed
}

// State returns the committed candidate of a collapsed cell,
// or the first viable candidate otherwise.
func (c *Cell) State() *entropy.State {
	return c.states[0]
}

// fieldSnapshot captures candidate sets and collapse flags for backtracking.
type fieldSnapshot struct {
	states    [][]*entropy.State
	collapsed []bool
}

func (p *Propagator) snapshot() *fieldSnapshot {
	s := &fieldSnapshot{
		states:    make([][]*entropy.State, len(p.cells)),
		collapsed: make([]bool, len(p.cells)),
	}
	for i, c := range p.cells {
		s.states[i] = append([]*entropy.State(nil), c.states...)
		s.collapsed[i] = c.collapsed
	}
	return s
}

func (p *Propagator) restore(s *fieldSnapshot) {
	for i, c := range p.cells {
		c.states = append([]*entropy.State(nil), s.states[i]...)
		c.collapsed = s.collapsed[i]
	}
}

// InitField lifts the non-trivia subsequence of tokens into cells, one per
// retained token, each seeded with its lifted state. Constraint expansion
// adds alternate readings where the grammar admits them: a contextual
// keyword also receives an identifier interpretation.
func (p *Propagator) InitField(tokens []*token.Token) error {
	retained := token.Filter(tokens)
	p.cells = make([]*Cell, len(retained))
	for i, t := range retained {
		states := []*entropy.State{entropy.Lift(t)}
		if t.Type() == token.Keyword && token.IsContextual(t.Text()) {
			states = append(states, entropy.Derive(t, token.Identifier))
		}
		p.cells[i] = &Cell{index: i, tok: t, states: states}
	}
	return nil
}

// Cells returns the field cells in source order.
func (p *Propagator) Cells() []*Cell {
	return p.cells
}
