package format

import (
	"context"
	"strings"
)

// Escaper is the raw string escaping primitive of a database client. It
// returns s escaped for embedding between single quotes in a SQL string
// literal, without the surrounding quotes.
//
// The output must be consistent with the QuoteStyle in use. Under
// BackslashQuotes every backslash it returns starts a pair that is copied
// as is, so a backslash meant literally must be doubled. Under DoubledQuotes
// a pair of quotes is copied as is and stands for one quote.
type Escaper interface {
	EscapeString(ctx context.Context, s string) (string, error)
}

// EscaperFunc adapts an ordinary function to the Escaper interface.
type EscaperFunc func(s string) string

func (f EscaperFunc) EscapeString(_ context.Context, s string) (string, error) {
	return f(s), nil
}

// BackslashEscaper escapes strings the way the MySQL client library does
// when the server is not in NO_BACKSLASH_ESCAPES mode.
var BackslashEscaper Escaper = EscaperFunc(escapeBackslash)

// DoublingEscaper escapes strings as standard SQL does, by doubling single
// quotes. Use it with DoubledQuotes.
var DoublingEscaper Escaper = EscaperFunc(func(s string) string {
	return strings.ReplaceAll(s, "'", "''")
})

func escapeBackslash(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case 0:
			sb.WriteString(`\0`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\x1a':
			sb.WriteString(`\Z`)
		case '\\', '\'', '"':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
