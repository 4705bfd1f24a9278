package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/canonical/sqltpl"
)

// config holds the command line options.
type config struct {
	Template string
	ArgsFile string
	Quotes   string
	Driver   string
	DSN      string
	Verbose  bool
}

// run builds the query described by cfg and writes it to stdout.
func run(ctx context.Context, cfg config, stdin io.Reader, stdout, stderr io.Writer) error {
	tmpl := cfg.Template
	if tmpl == "" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("cannot read template: %w", err)
		}
		tmpl = strings.TrimRight(string(b), "\n")
	}

	var args arguments
	if cfg.ArgsFile != "" {
		var err error
		args, err = readArguments(cfg.ArgsFile)
		if err != nil {
			return err
		}
	}

	quotes, err := quoteStyle(cfg)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	esc, closeEscaper, err := openEscaper(cfg, quotes)
	if err != nil {
		return err
	}
	defer logClose(logger, closeEscaper)

	logger.Debug("using escaper", slog.String("driver", cfg.Driver), slog.String("quotes", quotes.String()))

	db := sqltpl.NewDB(esc, sqltpl.WithQuoteStyle(quotes), sqltpl.WithCacheSize(0), sqltpl.WithLogger(logger))
	query, err := db.BuildQueryContext(ctx, tmpl, args...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, query)
	return err
}

func quoteStyle(cfg config) (sqltpl.QuoteStyle, error) {
	if cfg.Quotes != "" {
		return sqltpl.ParseQuoteStyle(cfg.Quotes)
	}
	if cfg.Driver == "sqlite3" {
		return sqltpl.DoubledQuotes, nil
	}
	return sqltpl.BackslashQuotes, nil
}

// logClose calls close and logs its error, if any.
func logClose(logger *slog.Logger, close func() error) {
	if err := close(); err != nil {
		logger.Warn("cannot close escaper", slog.Any("error", err))
	}
}

// openEscaper returns the Escaper selected by cfg and a function releasing
// the database it uses, if any.
func openEscaper(cfg config, quotes sqltpl.QuoteStyle) (sqltpl.Escaper, func() error, error) {
	var sqldb *sql.DB
	var query string
	switch cfg.Driver {
	case "":
		if quotes == sqltpl.DoubledQuotes {
			return sqltpl.DoublingEscaper, noClose, nil
		}
		return sqltpl.BackslashEscaper, noClose, nil
	case "sqlite3":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		var err error
		sqldb, err = sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open sqlite3 database: %w", err)
		}
		query = sqltpl.SQLiteQuote
	case "mysql":
		if cfg.DSN == "" {
			return nil, nil, fmt.Errorf("-dsn is required for the mysql driver")
		}
		mcfg, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid mysql DSN: %w", err)
		}
		connector, err := mysql.NewConnector(mcfg)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open mysql database: %w", err)
		}
		sqldb = sql.OpenDB(connector)
		query = sqltpl.MySQLQuote
	default:
		return nil, nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	esc := sqltpl.NewQueryEscaper(sqldb, query)
	return esc, func() error {
		return errors.Join(esc.Close(), sqldb.Close())
	}, nil
}

func noClose() error { return nil }

func readArguments(path string) (arguments, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read arguments: %w", err)
	}
	args, err := decodeArguments(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode arguments from %s: %w", path, err)
	}
	return args, nil
}
