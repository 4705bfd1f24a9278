package format

import (
	"fmt"
	"strings"
)

// QuoteStyle selects how single quotes left unescaped by the Escaper are
// escaped inside a string literal.
type QuoteStyle int

const (
	// BackslashQuotes writes a quote as \'. Backslash pairs produced by the
	// escaper are kept as they are and a trailing lone backslash is doubled
	// so that it cannot escape the closing quote.
	BackslashQuotes QuoteStyle = iota
	// DoubledQuotes writes a quote as ''. Quotes already doubled by the
	// escaper are kept as they are.
	DoubledQuotes
)

func (q QuoteStyle) String() string {
	switch q {
	case BackslashQuotes:
		return "backslash"
	case DoubledQuotes:
		return "doubled"
	}
	return fmt.Sprintf("QuoteStyle(%d)", int(q))
}

// ParseQuoteStyle returns the style named by s, as printed by String.
func ParseQuoteStyle(s string) (QuoteStyle, error) {
	switch strings.ToLower(s) {
	case "backslash":
		return BackslashQuotes, nil
	case "doubled":
		return DoubledQuotes, nil
	}
	return 0, fmt.Errorf("unknown quote style %q", s)
}

// escapeQuotes escapes every single quote in s that is not already escaped.
func (q QuoteStyle) escapeQuotes(s string) string {
	if q == DoubledQuotes {
		return escapeDoubled(s)
	}
	return escapeBackslashQuotes(s)
}

func escapeBackslashQuotes(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) {
				sb.WriteByte(c)
				sb.WriteByte(s[i+1])
				i++
				continue
			}
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func escapeDoubled(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\'' {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString(`''`)
		if i+1 < len(s) && s[i+1] == '\'' {
			i++
		}
	}
	return sb.String()
}
