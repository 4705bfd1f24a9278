// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqltpl

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/canonical/sqltpl/internal/format"
)

// Escaper is the raw string escaping primitive of a database client. It
// returns s escaped for use between single quotes, without the quotes.
//
// A custom Escaper must produce output that matches the QuoteStyle of the
// DB. With BackslashQuotes, backslash pairs in its output are trusted and
// copied unchanged, so a literal backslash must come back doubled, as
// BackslashEscaper does. With DoubledQuotes, '' pairs are trusted.
type Escaper = format.Escaper

// EscaperFunc adapts an ordinary function to the Escaper interface.
type EscaperFunc = format.EscaperFunc

// QuoteStyle selects how single quotes left unescaped by the Escaper are
// written inside string literals.
type QuoteStyle = format.QuoteStyle

const (
	// BackslashQuotes writes quotes as \', as MySQL expects.
	BackslashQuotes = format.BackslashQuotes
	// DoubledQuotes writes quotes as '', as standard SQL and SQLite expect.
	DoubledQuotes = format.DoubledQuotes
)

var (
	// BackslashEscaper escapes strings as mysql_real_escape_string does.
	BackslashEscaper = format.BackslashEscaper
	// DoublingEscaper doubles single quotes. Use it with DoubledQuotes.
	DoublingEscaper = format.DoublingEscaper
)

// ParseQuoteStyle returns the QuoteStyle named "backslash" or "doubled".
func ParseQuoteStyle(s string) (QuoteStyle, error) {
	return format.ParseQuoteStyle(s)
}

const (
	// SQLiteQuote asks SQLite to quote a string literal.
	SQLiteQuote = "SELECT quote(?)"
	// MySQLQuote asks MySQL to quote a string literal.
	MySQLQuote = "SELECT QUOTE(?)"
)

// QueryEscaper escapes strings by asking a database to quote them. The
// query takes the string as its only parameter and returns it as a quoted
// SQL literal, such as SQLiteQuote or MySQLQuote. The surrounding quotes are
// stripped from the result.
//
// The statement is prepared on first use and kept until Close is called.
type QueryEscaper struct {
	db    *sql.DB
	query string

	mutex sync.Mutex
	stmt  *sql.Stmt
}

// NewQueryEscaper returns a QueryEscaper running query on db.
func NewQueryEscaper(db *sql.DB, query string) *QueryEscaper {
	return &QueryEscaper{db: db, query: query}
}

// EscapeString implements Escaper.
func (e *QueryEscaper) EscapeString(ctx context.Context, s string) (string, error) {
	stmt, err := e.prepare(ctx)
	if err != nil {
		return "", err
	}
	var quoted sql.NullString
	if err := stmt.QueryRowContext(ctx, s).Scan(&quoted); err != nil {
		return "", fmt.Errorf("cannot quote string: %w", err)
	}
	q := quoted.String
	if !quoted.Valid || len(q) < 2 || q[0] != '\'' || q[len(q)-1] != '\'' {
		return "", fmt.Errorf("cannot quote string: expected a quoted literal, got %q", q)
	}
	return q[1 : len(q)-1], nil
}

// prepare returns the prepared quoting statement, preparing it if needed.
func (e *QueryEscaper) prepare(ctx context.Context) (*sql.Stmt, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.stmt != nil {
		return e.stmt, nil
	}
	stmt, err := e.db.PrepareContext(ctx, e.query)
	if err != nil {
		return nil, fmt.Errorf("cannot prepare quote statement: %w", err)
	}
	e.stmt = stmt
	return stmt, nil
}

// Close releases the prepared statement. The QueryEscaper may be used again
// afterwards; the statement is then prepared anew.
func (e *QueryEscaper) Close() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.stmt == nil {
		return nil
	}
	err := e.stmt.Close()
	e.stmt = nil
	return err
}
