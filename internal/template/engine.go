package template

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/canonical/sqltpl/internal/format"
	"github.com/canonical/sqltpl/internal/value"
)

var (
	ErrEmptyTemplate   = errors.New("empty template")
	ErrMissingArgument = errors.New("missing argument")
)

// ParseFunc returns the parsed form of a template whose conditional blocks
// have been resolved.
type ParseFunc func(input string) *Parsed

// Engine builds SQL from templates and arguments.
type Engine struct {
	formatter *format.Formatter
	parse     ParseFunc
}

// NewEngine returns an Engine that renders arguments with f. If parse is nil
// every template is parsed afresh.
func NewEngine(f *format.Formatter, parse ParseFunc) *Engine {
	if parse == nil {
		parse = func(input string) *Parsed {
			return NewParser().Parse(input)
		}
	}
	return &Engine{formatter: f, parse: parse}
}

// Build resolves the conditional blocks of tmpl, then replaces each
// placeholder with its argument.
//
// Whether blocks are kept is decided once for the whole template: if the
// Skip sentinel is anywhere in args every block is removed, regardless of
// which placeholders the blocks contain.
func (e *Engine) Build(ctx context.Context, tmpl string, args []value.Value) (string, error) {
	if strings.TrimSpace(tmpl) == "" {
		return "", ErrEmptyTemplate
	}
	input := Elide(tmpl, value.ContainsSkip(args))
	return e.parse(input).Render(ctx, e.formatter, args)
}

// Render substitutes args into the placeholders of pt. Placeholder i
// consumes args[i]; arguments beyond the last placeholder are ignored.
func (pt *Parsed) Render(ctx context.Context, f *format.Formatter, args []value.Value) (string, error) {
	var sb strings.Builder
	cursor := 0
	for _, p := range pt.parts {
		switch p := p.(type) {
		case *bypassPart:
			sb.WriteString(p.chunk)
		case *placeholderPart:
			if cursor >= len(args) {
				return "", fmt.Errorf("%w at index %d", ErrMissingArgument, cursor)
			}
			arg := args[cursor]
			cursor++
			if arg == nil {
				arg = value.Null{}
			}
			tag := p.tag
			if tag == format.TagNone {
				tag = InferTag(arg)
			}
			if value.IsSkip(arg) {
				return "", fmt.Errorf("argument %d: %w", p.index, value.ErrUnexpectedSkip)
			}
			out, err := f.ByType(ctx, arg, tag)
			if err != nil {
				return "", fmt.Errorf("argument %d (offset %d, ?%s): %w", p.index, p.offset, tag, err)
			}
			sb.WriteString(out)
		default:
			return "", fmt.Errorf("internal error: unknown part type %T", p)
		}
	}
	return sb.String(), nil
}

// InferTag returns the tag an untagged placeholder takes from its argument.
func InferTag(v value.Value) format.Tag {
	switch v.(type) {
	case value.Int:
		return format.TagInt
	case value.Float:
		return format.TagFloat
	case value.Array:
		return format.TagArray
	}
	return format.TagScalar
}
