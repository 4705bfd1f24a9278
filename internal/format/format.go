// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package format renders template arguments as SQL text.
package format

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/canonical/sqltpl/internal/value"
)

var (
	ErrEmptyArray      = errors.New("empty array")
	ErrEmptyIdentifier = errors.New("empty identifier")
)

// Tag is the type tag that may follow a placeholder.
type Tag byte

const (
	// TagNone marks an untagged placeholder. The tag is inferred from the
	// argument.
	TagNone   Tag = 0
	TagInt    Tag = 'd'
	TagFloat  Tag = 'f'
	TagArray  Tag = 'a'
	TagIdent  Tag = '#'
	TagScalar Tag = 's'
)

// ParseTag returns the tag denoted by c.
func ParseTag(c byte) (Tag, bool) {
	switch t := Tag(c); t {
	case TagInt, TagFloat, TagArray, TagIdent, TagScalar:
		return t, true
	}
	return TagNone, false
}

func (t Tag) String() string {
	if t == TagNone {
		return ""
	}
	return string(rune(t))
}

// Formatter renders values as SQL text. String literals are escaped with
// the Escaper and then quoted according to the QuoteStyle. A Formatter holds
// no mutable state.
type Formatter struct {
	esc    Escaper
	quotes QuoteStyle
}

// New returns a Formatter. A nil Escaper selects BackslashEscaper.
func New(esc Escaper, quotes QuoteStyle) *Formatter {
	if esc == nil {
		esc = BackslashEscaper
	}
	return &Formatter{esc: esc, quotes: quotes}
}

// Value renders a single scalar: NULL, 1 or 0 for booleans, decimal text for
// numbers and a quoted, escaped literal for strings.
func (f *Formatter) Value(ctx context.Context, v value.Value) (string, error) {
	switch v := v.(type) {
	case nil, value.Null:
		return "NULL", nil
	case value.Bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case value.Int:
		return strconv.FormatInt(int64(v), 10), nil
	case value.Float:
		return value.FormatFloat(float64(v))
	case value.Str:
		return f.Literal(ctx, string(v))
	case value.Array:
		return "", value.ErrArrayAsScalar
	case value.Skip:
		return "", value.ErrUnexpectedSkip
	}
	return "", fmt.Errorf("%w: %T", value.ErrUnsupportedType, v)
}

// ByType renders v as directed by tag.
func (f *Formatter) ByType(ctx context.Context, v value.Value, tag Tag) (string, error) {
	if value.IsSkip(v) {
		return "", value.ErrUnexpectedSkip
	}
	switch tag {
	case TagInt:
		if isNull(v) {
			return "NULL", nil
		}
		return strconv.FormatInt(value.ToInt(v), 10), nil
	case TagFloat:
		if isNull(v) {
			return "NULL", nil
		}
		return value.FormatFloat(value.ToFloat(v))
	case TagArray:
		return f.array(ctx, v)
	case TagIdent:
		return f.identifiers(v)
	case TagScalar, TagNone:
		return f.Value(ctx, v)
	}
	return "", fmt.Errorf("unknown type tag %q", byte(tag))
}

// Literal escapes s and wraps it in single quotes.
func (f *Formatter) Literal(ctx context.Context, s string) (string, error) {
	escaped, err := f.esc.EscapeString(ctx, s)
	if err != nil {
		return "", fmt.Errorf("cannot escape string: %w", err)
	}
	return "'" + f.quotes.escapeQuotes(escaped) + "'", nil
}

// Identifier quotes name with backticks, doubling any backtick inside it.
func (f *Formatter) Identifier(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyIdentifier
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`", nil
}

// array renders an associative array as a SET style list of assignments
// and any other array as a list of values. A scalar other than NULL is
// rendered as a one element list.
func (f *Formatter) array(ctx context.Context, v value.Value) (string, error) {
	arr, ok := v.(value.Array)
	if !ok {
		if isNull(v) {
			return "", ErrEmptyArray
		}
		arr = value.NewList(v)
	}
	if arr.Len() == 0 {
		return "", ErrEmptyArray
	}

	parts := make([]string, 0, arr.Len())
	if arr.IsAssoc() {
		for _, p := range arr.Pairs() {
			col, err := f.Identifier(p.Key)
			if err != nil {
				return "", fmt.Errorf("key %q: %w", p.Key, err)
			}
			val, err := f.Value(ctx, p.Value)
			if err != nil {
				return "", fmt.Errorf("key %q: %w", p.Key, err)
			}
			parts = append(parts, col+" = "+val)
		}
		return strings.Join(parts, ", "), nil
	}
	for i, e := range arr.Elems() {
		val, err := f.Value(ctx, e)
		if err != nil {
			return "", fmt.Errorf("element %d: %w", i, err)
		}
		parts = append(parts, val)
	}
	return strings.Join(parts, ", "), nil
}

// identifiers renders a single identifier, or a comma separated list of
// identifiers from the elements of an array.
func (f *Formatter) identifiers(v value.Value) (string, error) {
	names := []value.Value{v}
	if arr, ok := v.(value.Array); ok {
		if arr.Len() == 0 {
			return "", ErrEmptyArray
		}
		names = arr.Elems()
	}
	quoted := make([]string, 0, len(names))
	for i, n := range names {
		text, err := value.Text(n)
		if err == nil {
			text, err = f.Identifier(text)
		}
		if err != nil {
			if len(names) > 1 {
				err = fmt.Errorf("element %d: %w", i, err)
			}
			return "", err
		}
		quoted = append(quoted, text)
	}
	return strings.Join(quoted, ", "), nil
}

func isNull(v value.Value) bool {
	switch v.(type) {
	case nil, value.Null:
		return true
	}
	return false
}
