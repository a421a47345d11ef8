package entropy

import (
	"strconv"
)

// ValueKind discriminates the literal payload union.
type ValueKind int

const (
	None ValueKind = iota
	Int
	Float
	Text
)

func (k ValueKind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Text:
		return "text"
	default:
		return "none"
	}
}

// Value is a closed union over the literal kinds a state may carry.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
}

func NoneValue() Value {
	return Value{}
}

func IntValue(i int64) Value {
	return Value{kind: Int, i: i}
}

func FloatValue(f float64) Value {
	return Value{kind: Float, f: f}
}

func TextValue(s string) Value {
	return Value{kind: Text, s: s}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Int returns the integer payload, 0 for other kinds.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the float payload, 0 for other kinds.
func (v Value) Float() float64 {
	return v.f
}

// Text returns the text payload, empty for other kinds.
func (v Value) Text() string {
	return v.s
}

func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Text:
		return v.s
	default:
		return ""
	}
}
