package sqltpl

import (
	"github.com/canonical/sqltpl/internal/value"
)

// Value is a template argument. Arguments passed to [DB.BuildQuery] as
// plain Go values are converted to a Value; the constructors below build one
// explicitly.
type Value = value.Value

// Pair is a column and value of an associative array built with [Assoc].
type Pair = value.Pair

// Null is the SQL NULL value.
var Null Value = value.Null{}

// Skip returns the sentinel that, when present anywhere in the argument
// list, removes every conditional block from the template. It must not be
// consumed by a placeholder.
func Skip() Value {
	return value.Skip{}
}

// P returns a Pair for use with [Assoc]. It panics if v cannot be converted
// to a Value.
func P(column string, v any) Pair {
	return Pair{Key: column, Value: mustValueOf(v)}
}

// List returns an array argument rendered as a comma separated list of
// values by ?a, for example in an IN clause. It panics if an element cannot
// be converted to a Value.
func List(elems ...any) Value {
	vs := make([]Value, 0, len(elems))
	for _, e := range elems {
		vs = append(vs, mustValueOf(e))
	}
	return value.NewList(vs...)
}

// Assoc returns an associative array argument rendered as a list of
// `column` = value assignments by ?a, for example in an UPDATE SET clause.
// The pairs are rendered in the order given.
func Assoc(pairs ...Pair) Value {
	return value.NewAssoc(pairs...)
}

// ValueOf converts a Go value to a Value. Maps with string keys become
// associative arrays ordered by key; use [Assoc] to control the order.
// Structs become associative arrays of their fields tagged with
// `db:"column"` in field order. A field tagged `db:"column,omitempty"` is
// left out when it holds its zero value.
func ValueOf(v any) (Value, error) {
	return value.Of(v)
}

func mustValueOf(v any) Value {
	val, err := value.Of(v)
	if err != nil {
		panic(err)
	}
	return val
}
