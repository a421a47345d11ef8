/*
Package wfc is the grammar resolution engine of the Wave compiler front-end.

Instead of a deterministic recursive-descent parser, the engine treats the
token stream as a constraint-satisfaction problem modeled on the
wave-function-collapse algorithm: every token position is a cell holding one
or more weighted candidate interpretations, the grammar is a library of
structural patterns acting as constraints between cells, and an iterative
solver propagates constraints and collapses ambiguous cells until the whole
stream has a single consistent interpretation.

Consists of subpackages:
  - token: token model and the Wave tokenizer;
  - pattern: grammar pattern nodes and the constraint pattern library;
  - entropy: lifted candidate states and the confidence table;
  - matcher: stack-based pattern matching engine, the local consistency oracle;
  - collapse: entropy field, derived constraints, and the collapse controller;
  - grammar: the fixed Wave language pattern set;
  - cmd/wfcrun: console driver resolving a source file to a token stream.

Typical usage is:

 1. Tokenize a source file with the token package (or feed tokens from an
    external tokenizer).

 2. Build the language grammar with grammar.BuildLanguagePatterns, or compose
    a custom pattern.Library.

 3. Create a collapse.Propagator for the library, initialize its field from
    the token stream, create constraints, and run the collapse loop.

 4. On success read the resolved token vector, on failure read the collected
    diagnostics.
*/
package wfc

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	PatternErrors     = 1   // used by pattern
	LexicalErrors     = 101 // used by token
	ConstraintErrors  = 201 // used by collapse (constraint derivation)
	MatchErrors       = 301 // used by matcher
	PropagationErrors = 401 // used by collapse (collapse loop)
	SyntaxErrors      = 501 // used by collapse (final validation)
	InternalErrors    = 601 // invariant violations and misuse
)

// Category is the diagnostic taxonomy an Error belongs to.
type Category int

const (
	// Syntax: no pattern can accept the token sequence.
	Syntax Category = iota

	// Constraint: a derived constraint is malformed, e.g. an unresolved reference.
	Constraint

	// Propagation: a cell's candidate set emptied during collapse.
	Propagation

	// Internal: invariant violation or engine misuse.
	Internal
)

func (c Category) String() string {
	switch c {
	case Syntax:
		return "syntax"
	case Constraint:
		return "constraint"
	case Propagation:
		return "propagation"
	default:
		return "internal"
	}
}

// CategoryOf maps an error code to its category by code class.
func CategoryOf(code int) Category {
	switch {
	case code >= InternalErrors:
		return Internal
	case code >= SyntaxErrors:
		return Syntax
	case code >= PropagationErrors:
		return Propagation
	case code >= MatchErrors:
		return Syntax
	case code >= ConstraintErrors:
		return Constraint
	case code >= LexicalErrors:
		return Syntax
	default:
		return Internal
	}
}

// Severity of a diagnostic.
type Severity int

const (
	// SevError: the run cannot succeed, but the engine may continue collecting.
	SevError Severity = iota

	// SevFatal: the run stops immediately.
	SevFatal
)

func (s Severity) String() string {
	if s == SevFatal {
		return "fatal"
	}
	return "error"
}

// Error is the error type used by wfc subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Category contains the diagnostic taxonomy entry derived from Code.
	Category Category

	// Severity contains the diagnostic severity, SevError unless set otherwise.
	Severity Severity

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// Detail contains an optional lower-level cause description.
	Detail string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// token.Token and entropy.State implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{Code: code, Category: CategoryOf(code), Message: msg, SourceName: name, Line: line, Col: col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// WithDetail sets the Detail field and returns the error.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithSeverity sets the Severity field and returns the error.
func (e *Error) WithSeverity(s Severity) *Error {
	e.Severity = s
	return e
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// DefaultErrorLimit is the Collector capacity used when none is configured.
const DefaultErrorLimit = 20

// Collector is a bounded diagnostic sink shared by one compilation run.
// The engine never formats or prints diagnostics itself, it only records
// them here.
type Collector struct {
	limit  int
	errors []*Error
}

// NewCollector creates a Collector holding at most limit errors.
// limit < 1 means DefaultErrorLimit.
func NewCollector(limit int) *Collector {
	if limit < 1 {
		limit = DefaultErrorLimit
	}
	return &Collector{limit: limit}
}

// Add records an error.
// Returns false when the collector has reached its limit and the run should stop.
func (c *Collector) Add(e *Error) bool {
	if len(c.errors) >= c.limit {
		return false
	}
	c.errors = append(c.errors, e)
	return len(c.errors) < c.limit
}

// Errors returns all recorded errors in recording order.
func (c *Collector) Errors() []*Error {
	return c.errors
}

// Len returns the number of recorded errors.
func (c *Collector) Len() int {
	return len(c.errors)
}

// Empty reports whether nothing has been recorded.
func (c *Collector) Empty() bool {
	return len(c.errors) == 0
}

// Limit returns the collector capacity.
func (c *Collector) Limit() int {
	return c.limit
}
