// Package collapse implements the entropy field and the collapse controller
// running the wave-function-collapse fixpoint over a token stream.
//
// A run either fully succeeds, with every cell collapsed and the collapsed
// sequence satisfying the start pattern, or fully fails with a non-empty
// diagnostic list; there is no partial output.
package collapse

import (
	"sort"

	set "github.com/hashicorp/go-set/v3"

	"github.com/wavelang/wfc"
	"github.com/wavelang/wfc/entropy"
	"github.com/wavelang/wfc/matcher"
	"github.com/wavelang/wfc/pattern"
	"github.com/wavelang/wfc/token"
)

// PickPolicy orders uncollapsed cells; it reports whether a should be
// collapsed before b.
type PickPolicy func(a, b *Cell) bool

// ChoicePolicy orders the candidates of a cell being collapsed; it reports
// whether a should be committed before b.
type ChoicePolicy func(a, b *entropy.State) bool

// DefaultPick is the lowest-entropy heuristic: fewest viable candidates
// first, ties broken by lowest source position.
func DefaultPick(a, b *Cell) bool {
	if a.Entropy() != b.Entropy() {
		return a.Entropy() < b.Entropy()
	}
	return a.index < b.index
}

// choice is one committed collapse, kept for backtracking.
type choice struct {
	cell  int
	order []*entropy.State
	next  int
	saved *fieldSnapshot
}

// Propagator owns the ordered cell sequence, the constraints derived from
// the grammar, and the collapse loop. One Propagator serves one compilation:
// it is single-use and not safe for concurrent use.
type Propagator struct {
	lib       *pattern.Library
	collector *wfc.Collector
	limit     int
	pick      PickPolicy
	choose    ChoicePolicy

	cells       []*Cell
	constraints []*Constraint
	roles       *set.Set[string]
	biases      map[string]float64
	derived     bool

	choices []*choice
	output  []*token.Token
}

// Option configures a Propagator.
type Option func(*Propagator)

// WithErrorLimit bounds the number of collected diagnostics.
func WithErrorLimit(n int) Option {
	return func(p *Propagator) { p.limit = n }
}

// WithCollector shares an external diagnostic sink.
func WithCollector(c *wfc.Collector) Option {
	return func(p *Propagator) { p.collector = c }
}

// WithPickPolicy replaces the cell ordering heuristic.
func WithPickPolicy(f PickPolicy) Option {
	return func(p *Propagator) { p.pick = f }
}

// WithChoicePolicy replaces the candidate ordering heuristic.
func WithChoicePolicy(f ChoicePolicy) Option {
	return func(p *Propagator) { p.choose = f }
}

// New creates a propagator resolving against lib.
func New(lib *pattern.Library, opts ...Option) *Propagator {
	p := &Propagator{lib: lib, limit: wfc.DefaultErrorLimit}
	for _, opt := range opts {
		opt(p)
	}
	if p.collector == nil {
		p.collector = wfc.NewCollector(p.limit)
	}
	if p.pick == nil {
		p.pick = DefaultPick
	}
	if p.choose == nil {
		p.choose = p.defaultChoice
	}
	return p
}

// defaultChoice is the highest-confidence heuristic, scaled by constraint
// biases; ties keep declaration order through stable sorting.
func (p *Propagator) defaultChoice(a, b *entropy.State) bool {
	return p.weight(a) > p.weight(b)
}

// Errors returns the collected diagnostics.
func (p *Propagator) Errors() []*wfc.Error {
	return p.collector.Errors()
}

// Output returns the resolved token vector, nil until a successful run.
// Tokens carry the collapsed interpretation's type with the source token's
// text and position, never reordered, trivia excluded.
func (p *Propagator) Output() []*token.Token {
	return p.output
}

// record adds a diagnostic; false means the collector limit is reached and
// the run must stop.
func (p *Propagator) record(e *wfc.Error) bool {
	return p.collector.Add(e)
}

func (p *Propagator) failure() error {
	errs := p.collector.Errors()
	if len(errs) == 0 {
		return wfc.FormatError(NotInitializedError, "collapse failed with no diagnostics")
	}
	return errs[0]
}

// Run executes the collapse fixpoint: propagate, pick the lowest-entropy
// cell, commit its best candidate, propagate again, backtracking committed
// choices on contradiction, until the field is fully collapsed and the
// collapsed sequence satisfies the start pattern.
func (p *Propagator) Run() error {
	if p.cells == nil {
		e := notInitializedError()
		p.record(e)
		return e
	}
	if !p.derived {
		e := notDerivedError()
		p.record(e)
		return e
	}

	if e := p.propagate(); e != nil {
		if !p.record(e) || !p.backtrack() {
			return p.failure()
		}
	}

	for {
		if p.allCollapsed() {
			ce := matcher.Match(p.lib, p.lib.Start(), p.collapsedStates())
			if ce == nil {
				p.buildOutput()
				return nil
			}
			if !p.record(rejectedError(ce)) || !p.backtrack() {
				return p.failure()
			}
			continue
		}

		cell := p.pickCell()
		p.collapseCell(cell)
		if e := p.propagate(); e != nil {
			if !p.record(e) || !p.backtrack() {
				return p.failure()
			}
		}
	}
}

func (p *Propagator) allCollapsed() bool {
	for _, c := range p.cells {
		if !c.collapsed {
			return false
		}
	}
	return true
}

func (p *Propagator) collapsedStates() []*entropy.State {
	states := make([]*entropy.State, len(p.cells))
	for i, c := range p.cells {
		states[i] = c.states[0]
	}
	return states
}

// pickCell returns the uncollapsed cell the pick policy orders first.
func (p *Propagator) pickCell() *Cell {
	var best *Cell
	for _, c := range p.cells {
		if c.collapsed {
			continue
		}
		if best == nil || p.pick(c, best) {
			best = c
		}
	}
	return best
}

// collapseCell commits the cell to the candidate the choice policy orders
// first and records the choice for backtracking. The commitment is local:
// global consistency is established by propagation and the final match.
func (p *Propagator) collapseCell(c *Cell) {
	order := append([]*entropy.State(nil), c.states...)
	sort.SliceStable(order, func(i, j int) bool { return p.choose(order[i], order[j]) })

	p.choices = append(p.choices, &choice{cell: c.index, order: order, next: 1, saved: p.snapshot()})
	c.states = []*entropy.State{order[0]}
	c.collapsed = true
}

// viable checks a candidate for cell j against the adjacency constraints:
// the prefix formed by the determined interpretations of cells 0..j-1
// followed by the candidate must be a viable beginning of the start pattern.
// Callers must ensure every cell before j holds exactly one candidate.
func (p *Propagator) viable(j int, cand *entropy.State) *wfc.Error {
	states := make([]*entropy.State, 0, j+1)
	for i := 0; i < j; i++ {
		states = append(states, p.cells[i].states[0])
	}
	states = append(states, cand)
	return matcher.MatchPrefix(p.lib, p.lib.Start(), states)
}

// propagate re-filters every uncollapsed cell, dropping candidates the
// matching engine proves inconsistent, iterated to fixpoint. A candidate is
// provably inconsistent only when every cell before it is determined, that
// is collapsed or down to a single survivor; an undetermined prefix could
// still resolve more than one way, so cells behind it are only checked
// against the role vocabulary. Returns a propagation error when a candidate
// set empties.
func (p *Propagator) propagate() *wfc.Error {
	changed := true
	for changed {
		changed = false
		determined := true
		for j, cell := range p.cells {
			if !cell.collapsed {
				var cause *wfc.Error
				kept := make([]*entropy.State, 0, len(cell.states))
				for _, cand := range cell.states {
					if !p.admissible(cand) {
						continue
					}
					if determined {
						if ce := p.viable(j, cand); ce != nil {
							cause = ce
							continue
						}
					}
					kept = append(kept, cand)
				}

				if len(kept) == 0 {
					return emptyCellError(cell, cause)
				}
				if len(kept) != len(cell.states) {
					cell.states = kept
					changed = true
				}
			}
			determined = determined && len(cell.states) == 1
		}
	}
	return nil
}

// backtrack rewinds to the most recent committed choice with untried
// candidates, commits the next one, and re-propagates. Returns false when
// no alternatives remain anywhere or the error limit is reached.
func (p *Propagator) backtrack() bool {
	for len(p.choices) > 0 {
		ch := p.choices[len(p.choices)-1]
		if ch.next >= len(ch.order) {
			p.choices = p.choices[:len(p.choices)-1]
			continue
		}

		p.restore(ch.saved)
		cand := ch.order[ch.next]
		ch.next++

		cell := p.cells[ch.cell]
		cell.states = []*entropy.State{cand}
		cell.collapsed = true

		if e := p.propagate(); e != nil {
			if !p.record(e) {
				return false
			}
			continue
		}
		return true
	}
	return false
}

func (p *Propagator) buildOutput() {
	p.output = make([]*token.Token, len(p.cells))
	for i, c := range p.cells {
		p.output[i] = c.states[0].Token()
	}
}

// Resolve runs the whole pipeline over a token stream: initialize the field,
// create constraints, run the collapse loop. On success returns the resolved
// token vector and nil; on failure returns nil and the diagnostic list.
func Resolve(lib *pattern.Library, tokens []*token.Token, opts ...Option) ([]*token.Token, []*wfc.Error) {
	p := New(lib, opts...)
	if e := p.InitField(tokens); e != nil {
		return nil, p.Errors()
	}
	if e := p.CreateConstraints(); e != nil {
		return nil, p.Errors()
	}
	if e := p.Run(); e != nil {
		return nil, p.Errors()
	}
	return p.Output(), nil
}
