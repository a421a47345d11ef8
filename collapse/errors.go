package collapse

import (
	"github.com/wavelang/wfc"
	"github.com/wavelang/wfc/pattern"
)

// Error codes used during constraint derivation:
const (
	// StartNotFoundError indicates a library whose start pattern was never added.
	StartNotFoundError = wfc.ConstraintErrors + iota

	// UnresolvedReferenceError indicates a reference to a pattern absent from the library.
	UnresolvedReferenceError
)

// Error codes used by the collapse loop:
const (
	// EmptyCellError indicates that propagation emptied a cell's candidate set.
	EmptyCellError = wfc.PropagationErrors + iota
)

// Error codes used by final validation:
const (
	// RejectedError indicates that the fully collapsed sequence does not satisfy the start pattern.
	RejectedError = wfc.SyntaxErrors + iota
)

// Error codes for propagator misuse:
const (
	// NotInitializedError indicates a pipeline call before InitField.
	NotInitializedError = wfc.InternalErrors + iota

	// NotDerivedError indicates Run before CreateConstraints.
	NotDerivedError
)

func startNotFoundError(name string) *wfc.Error {
	return wfc.FormatError(StartNotFoundError, "start pattern %q not found in library", name)
}

func unresolvedReferenceError(p *pattern.Pattern) *wfc.Error {
	return wfc.FormatError(UnresolvedReferenceError, "referenced pattern %q not found", p.RefName())
}

func emptyCellError(c *Cell, cause *wfc.Error) *wfc.Error {
	t := c.Token()
	e := wfc.FormatErrorPos(t, EmptyCellError, "no viable interpretation of %s %q remains", t.TypeName(), t.Text())
	if cause != nil {
		e = e.WithDetail(cause.Message)
	}
	return e
}

func rejectedError(cause *wfc.Error) *wfc.Error {
	e := wfc.NewError(RejectedError, "collapsed token sequence rejected by grammar", cause.SourceName, cause.Line, cause.Col)
	return e.WithDetail(cause.Message)
}

func notInitializedError() *wfc.Error {
	return wfc.FormatError(NotInitializedError, "entropy field not initialized").WithSeverity(wfc.SevFatal)
}

func notDerivedError() *wfc.Error {
	return wfc.FormatError(NotDerivedError, "constraints not created").WithSeverity(wfc.SevFatal)
}
