// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqltpl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/canonical/sqltpl/internal/format"
	"github.com/canonical/sqltpl/internal/template"
	"github.com/canonical/sqltpl/internal/value"
)

var (
	ErrEmptyTemplate   = template.ErrEmptyTemplate
	ErrMissingArgument = template.ErrMissingArgument
	ErrEmptyArray      = format.ErrEmptyArray
	ErrEmptyIdentifier = format.ErrEmptyIdentifier
	ErrUnexpectedSkip  = value.ErrUnexpectedSkip
	ErrArrayAsScalar   = value.ErrArrayAsScalar
	ErrNotFinite       = value.ErrNotFinite
	ErrUnsupportedType = value.ErrUnsupportedType
)

// DB builds SQL queries from templates. It wraps the string escaping
// primitive of a database client; it does not run queries itself.
//
// A DB is safe for concurrent use as long as its Escaper is.
type DB struct {
	escaper   Escaper
	quotes    QuoteStyle
	cacheSize int
	logger    *slog.Logger

	cache  *templateCache
	engine *template.Engine
}

// Option configures a DB.
type Option func(*DB)

// WithQuoteStyle sets how quotes in string literals are escaped. The
// default is BackslashQuotes.
func WithQuoteStyle(q QuoteStyle) Option {
	return func(db *DB) {
		db.quotes = q
	}
}

// WithCacheSize sets the number of parsed templates kept by the DB. A size
// of zero disables the cache. The default is DefaultCacheSize.
func WithCacheSize(n int) Option {
	return func(db *DB) {
		db.cacheSize = n
	}
}

// WithLogger makes the DB log every query it builds, and every failure, at
// debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(db *DB) {
		db.logger = logger
	}
}

// NewDB returns a DB that escapes string literals with esc. A nil esc
// selects BackslashEscaper.
func NewDB(esc Escaper, opts ...Option) *DB {
	db := &DB{
		escaper:   esc,
		quotes:    BackslashQuotes,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(db)
	}
	db.cache = newTemplateCache(db.cacheSize)
	db.engine = template.NewEngine(format.New(db.escaper, db.quotes), db.cache.parse)
	return db
}

// Skip returns the sentinel that removes the conditional blocks of a
// template. It is the same value as the package level [Skip].
func (db *DB) Skip() Value {
	return Skip()
}

// BuildQuery returns the SQL for tmpl with args substituted into its
// placeholders.
//
// The template syntax is described in the package documentation. Arguments
// may be Values or plain Go values, which are converted with [ValueOf].
func (db *DB) BuildQuery(tmpl string, args ...any) (string, error) {
	return db.BuildQueryContext(context.Background(), tmpl, args...)
}

// BuildQueryContext is BuildQuery with a context, which is passed to the
// Escaper.
func (db *DB) BuildQueryContext(ctx context.Context, tmpl string, args ...any) (sql string, err error) {
	defer func() {
		if err != nil {
			db.log(ctx, "cannot build query", slog.String("template", tmpl), slog.Any("error", err))
			err = fmt.Errorf("cannot build query: %w", err)
		}
	}()

	vs, err := value.OfAll(args)
	if err != nil {
		return "", err
	}
	sql, err = db.engine.Build(ctx, tmpl, vs)
	if err != nil {
		return "", err
	}
	db.log(ctx, "built query", slog.String("template", tmpl), slog.Int("args", len(vs)), slog.String("sql", sql))
	return sql, nil
}

// MustBuildQuery is the same as [DB.BuildQuery] except that it panics on
// error.
func (db *DB) MustBuildQuery(tmpl string, args ...any) string {
	sql, err := db.BuildQuery(tmpl, args...)
	if err != nil {
		panic(err)
	}
	return sql
}

func (db *DB) log(ctx context.Context, msg string, attrs ...slog.Attr) {
	if db.logger == nil {
		return
	}
	db.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}
