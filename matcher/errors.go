package matcher

import (
	"github.com/wavelang/wfc"
	"github.com/wavelang/wfc/entropy"
	"github.com/wavelang/wfc/pattern"
)

// Error codes used by the matching engine:
const (
	// UnresolvedReferenceError indicates a reference whose target is absent from the library.
	UnresolvedReferenceError = wfc.MatchErrors + iota

	// UnexpectedTokenError indicates a state rejected by a required token pattern.
	UnexpectedTokenError

	// UnexpectedEndError indicates that input ended with unsatisfied obligations.
	UnexpectedEndError

	// UnexpectedInputError indicates states left over after the root pattern matched.
	UnexpectedInputError

	// UnhandledPatternError indicates a pattern kind the engine does not interpret.
	UnhandledPatternError
)

func unresolvedReferenceError(p *pattern.Pattern, pos wfc.SourcePos) *wfc.Error {
	if pos == nil {
		return wfc.FormatError(UnresolvedReferenceError, "referenced pattern %q not found", p.RefName())
	}
	return wfc.FormatErrorPos(pos, UnresolvedReferenceError, "referenced pattern %q not found", p.RefName())
}

func unexpectedTokenError(s *entropy.State, expected string) *wfc.Error {
	return wfc.FormatErrorPos(s, UnexpectedTokenError, "unexpected %s %q, expecting %s", s.Label(), s.Text(), expected)
}

func unexpectedEndError(expected string) *wfc.Error {
	return wfc.FormatError(UnexpectedEndError, "unexpected end of input, expecting %s", expected)
}

func unexpectedInputError(s *entropy.State) *wfc.Error {
	return wfc.FormatErrorPos(s, UnexpectedInputError, "unexpected %s %q after complete match", s.Label(), s.Text())
}

func unhandledPatternError(p *pattern.Pattern) *wfc.Error {
	return wfc.FormatError(UnhandledPatternError, "pattern type %s not handled", p.Kind())
}
