// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is an argument to a query template. The set of implementations is
// closed: Null, Bool, Int, Float, Str, Array and Skip.
type Value interface {
	// String returns a representation of the value for debugging and
	// testing purposes.
	String() string

	// value is a marker method.
	value()
}

// Null is the SQL NULL value.
type Null struct{}

func (Null) String() string { return "Null" }

func (Null) value() {}

type Bool bool

func (b Bool) String() string { return "Bool(" + strconv.FormatBool(bool(b)) + ")" }

func (Bool) value() {}

type Int int64

func (i Int) String() string { return "Int(" + strconv.FormatInt(int64(i), 10) + ")" }

func (Int) value() {}

type Float float64

func (f Float) String() string {
	return "Float(" + strconv.FormatFloat(float64(f), 'g', -1, 64) + ")"
}

func (Float) value() {}

type Str string

func (s Str) String() string { return "Str(" + strconv.Quote(string(s)) + ")" }

func (Str) value() {}

// Skip is the sentinel value requesting that conditional blocks are removed
// from the template. It is never rendered.
type Skip struct{}

func (Skip) String() string { return "Skip" }

func (Skip) value() {}

// Pair is a keyed element of an associative Array.
type Pair struct {
	Key   string
	Value Value
}

// Array is an ordered collection of values. An Array built with NewAssoc
// carries a key per element; it is associative unless its keys are exactly
// the sequence "0", "1", ..., "n-1".
type Array struct {
	// keys is nil for a list.
	keys  []string
	elems []Value
}

func (Array) value() {}

// NewList returns a list Array holding elems in order.
func NewList(elems ...Value) Array {
	return Array{elems: elems}
}

// NewAssoc returns an Array holding the pairs in order.
func NewAssoc(pairs ...Pair) Array {
	a := Array{
		keys:  make([]string, 0, len(pairs)),
		elems: make([]Value, 0, len(pairs)),
	}
	for _, p := range pairs {
		a.keys = append(a.keys, p.Key)
		a.elems = append(a.elems, p.Value)
	}
	return a
}

// Len returns the number of elements in the array.
func (a Array) Len() int {
	return len(a.elems)
}

// Elems returns the elements of the array in order.
func (a Array) Elems() []Value {
	return a.elems
}

// IsAssoc reports whether the keys of the array are anything other than the
// dense zero based index sequence.
func (a Array) IsAssoc() bool {
	if a.keys == nil {
		return false
	}
	for i, k := range a.keys {
		if k != strconv.Itoa(i) {
			return true
		}
	}
	return false
}

// Pairs returns the elements of the array with their keys. Elements of a list
// are keyed by their index.
func (a Array) Pairs() []Pair {
	pairs := make([]Pair, 0, len(a.elems))
	for i, v := range a.elems {
		k := strconv.Itoa(i)
		if a.keys != nil {
			k = a.keys[i]
		}
		pairs = append(pairs, Pair{Key: k, Value: v})
	}
	return pairs
}

func (a Array) String() string {
	var sb strings.Builder
	sb.WriteString("Array[")
	for i, p := range a.Pairs() {
		if i > 0 {
			sb.WriteString(" ")
		}
		if a.keys != nil {
			fmt.Fprintf(&sb, "%s:", p.Key)
		}
		sb.WriteString(p.Value.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// IsSkip reports whether v is the Skip sentinel.
func IsSkip(v Value) bool {
	_, ok := v.(Skip)
	return ok
}

// ContainsSkip reports whether the Skip sentinel is one of vs. Elements of
// arrays are not inspected.
func ContainsSkip(vs []Value) bool {
	for _, v := range vs {
		if IsSkip(v) {
			return true
		}
	}
	return false
}
