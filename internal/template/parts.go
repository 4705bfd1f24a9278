package template

import (
	"fmt"

	"github.com/canonical/sqltpl/internal/format"
)

// A part represents a section of a template after conditional blocks have
// been resolved. The template is represented as a list of parts.
type part interface {
	// String returns a string representation of the part for debugging and
	// testing purposes.
	String() string

	// part is a marker method.
	part()
}

// placeholderPart represents a parsed placeholder.
type placeholderPart struct {
	// tag is the explicit type tag, or format.TagNone.
	tag format.Tag
	// index is the position of the argument consumed by the placeholder.
	index int
	// offset is the byte offset of the '?' in the template.
	offset int
}

func (p *placeholderPart) String() string {
	return fmt.Sprintf("Placeholder[%d%s]", p.index, p.tag)
}

// Marker function for part.
func (p *placeholderPart) part() {}

// bypassPart represents a part of the template that is copied to the SQL
// verbatim.
type bypassPart struct {
	chunk string
}

func (p *bypassPart) String() string {
	return "Bypass[" + p.chunk + "]"
}

// Marker function for part.
func (p *bypassPart) part() {}
