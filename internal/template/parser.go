// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package template

import (
	"strings"

	"github.com/canonical/sqltpl/internal/format"
)

func NewParser() *Parser {
	return &Parser{}
}

// Parser splits a template, whose conditional blocks have already been
// resolved, into bypass chunks and placeholders.
type Parser struct {
	input string
	pos   int
	// prevPartEnd is the value of pos when we last finished parsing a
	// placeholder.
	prevPartEnd int
	// parts are the output of the parser. Parts are added as they are
	// parsed.
	parts []part
	// count is the number of placeholders parsed so far.
	count int
}

// Parsed is a template split into parts. It is immutable and may be shared
// between goroutines.
type Parsed struct {
	parts        []part
	placeholders int
}

// Placeholders returns the number of placeholders in the template.
func (pt *Parsed) Placeholders() int {
	return pt.placeholders
}

func (pt *Parsed) String() string {
	var sb strings.Builder
	sb.WriteString("Parsed[")
	for i, p := range pt.parts {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// init resets the state of the parser and sets the input string.
func (p *Parser) init(input string) {
	p.input = input
	p.pos = 0
	p.prevPartEnd = 0
	p.parts = []part{}
	p.count = 0
}

// Parse scans input once from left to right. Every '?' starts a
// placeholder, which also takes the following character when that is a type
// tag. Placeholders are numbered in the order they are found.
func (p *Parser) Parse(input string) *Parsed {
	p.init(input)
	for p.skipToPlaceholder() {
		start := p.pos
		p.pos++
		tag := format.TagNone
		if p.pos < len(p.input) {
			if t, ok := format.ParseTag(p.input[p.pos]); ok {
				tag = t
				p.pos++
			}
		}
		p.add(start, &placeholderPart{tag: tag, index: p.count, offset: start})
		p.count++
	}
	p.add(len(p.input), nil)
	return &Parsed{parts: p.parts, placeholders: p.count}
}

// skipToPlaceholder advances the parser to the next '?'. It returns false if
// there are none left.
func (p *Parser) skipToPlaceholder() bool {
	i := strings.IndexByte(p.input[p.pos:], '?')
	if i < 0 {
		p.pos = len(p.input)
		return false
	}
	p.pos += i
	return true
}

// add pushes the bypass chunk that stretches from the end of the previous
// placeholder to start, followed by the part itself when it is not nil.
func (p *Parser) add(start int, pp part) {
	if p.prevPartEnd != start {
		p.parts = append(p.parts, &bypassPart{p.input[p.prevPartEnd:start]})
	}
	if pp != nil {
		p.parts = append(p.parts, pp)
	}
	p.prevPartEnd = p.pos
}
