package matcher

import (
	"github.com/wavelang/wfc/entropy"
	"github.com/wavelang/wfc/pattern"
)

func tokenAccepts(p *pattern.Pattern, s *entropy.State) bool {
	return p.TokenType() == s.Type() && (p.TokenText() == "" || p.TokenText() == s.Text())
}

// accepts reports whether some first-token derivation of p matches s.
// This is the one-token lookahead used by superposition, repetition, and
// optional handling; it resolves references through the library with a
// visited guard against reference cycles.
func (c *Context) accepts(p *pattern.Pattern, s *entropy.State) bool {
	return c.acceptsGuarded(p, s, nil)
}

func (c *Context) acceptsGuarded(p *pattern.Pattern, s *entropy.State, visited map[string]bool) bool {
	switch p.Kind() {
	case pattern.Token:
		return tokenAccepts(p, s)

	case pattern.Reference:
		if visited[p.RefName()] {
			return false
		}
		r := c.lib.Get(p.RefName())
		if r == nil {
			return false
		}
		if visited == nil {
			visited = make(map[string]bool)
		}
		visited[p.RefName()] = true
		return c.acceptsGuarded(r, s, visited)

	case pattern.Sequence:
		for _, sub := range p.Subs() {
			if c.acceptsGuarded(sub, s, visited) {
				return true
			}
			if !c.nullable(sub, nil) {
				return false
			}
		}
		return false

	case pattern.Superposition:
		for _, sub := range p.Subs() {
			if c.acceptsGuarded(sub, s, visited) {
				return true
			}
		}
		return false

	case pattern.Repetition, pattern.Optional:
		return c.acceptsGuarded(p.Subs()[0], s, visited)

	default:
		return false
	}
}

// nullable reports whether p can match empty input.
func (c *Context) nullable(p *pattern.Pattern, visited map[string]bool) bool {
	switch p.Kind() {
	case pattern.Repetition, pattern.Optional:
		return true

	case pattern.Sequence:
		for _, sub := range p.Subs() {
			if !c.nullable(sub, visited) {
				return false
			}
		}
		return true

	case pattern.Superposition:
		for _, sub := range p.Subs() {
			if c.nullable(sub, visited) {
				return true
			}
		}
		return false

	case pattern.Reference:
		if visited[p.RefName()] {
			return false
		}
		r := c.lib.Get(p.RefName())
		if r == nil {
			return false
		}
		if visited == nil {
			visited = make(map[string]bool)
		}
		visited[p.RefName()] = true
		return c.nullable(r, visited)

	default:
		return false
	}
}

// firstAccepting returns the first alternative of a superposition whose
// content accepts s, nil when none does. Declaration order only breaks ties:
// the choice is content-first-match.
func (c *Context) firstAccepting(p *pattern.Pattern, s *entropy.State) *pattern.Pattern {
	for _, sub := range p.Subs() {
		if c.accepts(sub, s) {
			return sub
		}
	}
	return nil
}

// firstNullable returns the first alternative of a superposition that can
// match empty input, nil when none can.
func (c *Context) firstNullable(p *pattern.Pattern) *pattern.Pattern {
	for _, sub := range p.Subs() {
		if c.nullable(sub, nil) {
			return sub
		}
	}
	return nil
}
