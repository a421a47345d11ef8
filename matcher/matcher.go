// Package matcher implements the stack-based pattern matching engine, the
// local consistency oracle of the collapse loop.
//
// A Context holds a LIFO obligation stack of patterns still to satisfy and
// is driven one state at a time, so the collapse controller can validate
// prefixes incrementally. The engine only ever expands the current top
// obligation and never revisits a popped one: a superposition commits to
// the first alternative whose derivable first token accepts the current
// state, with no cross-alternative backtracking.
package matcher

import (
	"github.com/wavelang/wfc"
	"github.com/wavelang/wfc/entropy"
	"github.com/wavelang/wfc/pattern"
)

// Status of a matching attempt.
type Status int

const (
	// Running: more states are needed.
	Running Status = iota

	// Matched: all obligations satisfied.
	Matched

	// Failed: the attempt hit an error; see Context.Err.
	Failed
)

func (s Status) String() string {
	switch s {
	case Matched:
		return "matched"
	case Failed:
		return "failed"
	default:
		return "running"
	}
}

// Context is the transient state of one matching attempt, single-use.
type Context struct {
	lib    *pattern.Library
	stack  []*pattern.Pattern
	cursor int
	status Status
	err    *wfc.Error
}

// NewContext creates an attempt matching states against root,
// resolving references through lib.
func NewContext(lib *pattern.Library, root *pattern.Pattern) *Context {
	return &Context{lib: lib, stack: []*pattern.Pattern{root}}
}

func (c *Context) Status() Status {
	return c.status
}

// Err returns the error of a failed attempt, nil otherwise.
func (c *Context) Err() *wfc.Error {
	return c.err
}

// Cursor returns the number of consumed states.
func (c *Context) Cursor() int {
	return c.cursor
}

// Depth returns the current obligation stack depth.
func (c *Context) Depth() int {
	return len(c.stack)
}

func (c *Context) fail(e *wfc.Error) {
	c.status = Failed
	c.err = e
}

func (c *Context) pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Context) push(p *pattern.Pattern) {
	c.stack = append(c.stack, p)
}

// Step feeds one state to the attempt and returns the new status.
// The state is consumed only when Step returns with the cursor advanced;
// a Matched result with an unchanged cursor means the pattern completed
// without needing this state.
func (c *Context) Step(s *entropy.State) Status {
	for c.status == Running {
		if len(c.stack) == 0 {
			c.status = Matched
			break
		}

		top := c.stack[len(c.stack)-1]
		switch top.Kind() {
		case pattern.Token:
			if !tokenAccepts(top, s) {
				c.fail(unexpectedTokenError(s, describe(top)))
				break
			}
			c.pop()
			c.cursor++
			top.CountMatch()
			if len(c.stack) == 0 {
				c.status = Matched
			}
			return c.status

		case pattern.Reference:
			r := c.lib.Get(top.RefName())
			if r == nil {
				c.fail(unresolvedReferenceError(top, s))
				break
			}
			c.stack[len(c.stack)-1] = r

		case pattern.Sequence:
			c.pop()
			subs := top.Subs()
			for i := len(subs) - 1; i >= 0; i-- {
				c.push(subs[i])
			}

		case pattern.Superposition:
			alt := c.firstAccepting(top, s)
			if alt == nil {
				c.fail(unexpectedTokenError(s, describe(top)))
				break
			}
			top.SetCollapsed(true)
			c.stack[len(c.stack)-1] = alt

		case pattern.Repetition:
			if c.accepts(top.Subs()[0], s) {
				c.push(top.Subs()[0])
			} else {
				c.pop()
			}

		case pattern.Optional:
			c.pop()
			if c.accepts(top.Subs()[0], s) {
				c.push(top.Subs()[0])
			}

		default:
			c.fail(unhandledPatternError(top))
		}
	}

	return c.status
}

// Finish closes the attempt after the last state: remaining obligations
// must all be satisfiable by empty input, otherwise the attempt fails.
func (c *Context) Finish() Status {
	for c.status == Running && len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		switch top.Kind() {
		case pattern.Repetition, pattern.Optional:
			c.pop()

		case pattern.Sequence:
			c.pop()
			subs := top.Subs()
			for i := len(subs) - 1; i >= 0; i-- {
				c.push(subs[i])
			}

		case pattern.Reference:
			r := c.lib.Get(top.RefName())
			if r == nil {
				c.fail(unresolvedReferenceError(top, nil))
				break
			}
			c.stack[len(c.stack)-1] = r

		case pattern.Superposition:
			alt := c.firstNullable(top)
			if alt == nil {
				c.fail(unexpectedEndError(describe(top)))
				break
			}
			c.stack[len(c.stack)-1] = alt

		case pattern.Token:
			c.fail(unexpectedEndError(describe(top)))

		default:
			c.fail(unhandledPatternError(top))
		}
	}

	if c.status == Running {
		c.status = Matched
	}
	return c.status
}

// Match runs a complete attempt: states must satisfy root exactly,
// no shortfall and no leftover. Returns nil on success.
func Match(lib *pattern.Library, root *pattern.Pattern, states []*entropy.State) *wfc.Error {
	c := NewContext(lib, root)
	for _, s := range states {
		switch c.Step(s) {
		case Failed:
			return c.err
		case Matched:
			if c.cursor < len(states) {
				return unexpectedInputError(states[c.cursor])
			}
			return nil
		}
	}

	if c.Finish() == Failed {
		return c.err
	}
	return nil
}

// MatchPrefix reports whether states can begin a match of root: the attempt
// must not fail, but may still be running after the last state.
// Returns nil when states form a viable prefix.
func MatchPrefix(lib *pattern.Library, root *pattern.Pattern, states []*entropy.State) *wfc.Error {
	c := NewContext(lib, root)
	for _, s := range states {
		switch c.Step(s) {
		case Failed:
			return c.err
		case Matched:
			if c.cursor < len(states) {
				return unexpectedInputError(states[c.cursor])
			}
			return nil
		}
	}
	return nil
}

func describe(p *pattern.Pattern) string {
	switch p.Kind() {
	case pattern.Token:
		if p.TokenText() != "" {
			return "\"" + p.TokenText() + "\""
		}
		return "$" + p.TokenType().String()
	default:
		return p.Name()
	}
}
