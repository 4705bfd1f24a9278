// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqltpl_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/DATA-DOG/go-sqlmock"
	. "gopkg.in/check.v1"

	"github.com/canonical/sqltpl"
)

type EscapeSuite struct{}

var _ = Suite(&EscapeSuite{})

func (s *EscapeSuite) newMock(c *C) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	c.Assert(err, IsNil)
	return db, mock
}

func (s *EscapeSuite) TestQueryEscaper(c *C) {
	sqldb, mock := s.newMock(c)
	defer sqldb.Close()

	prep := mock.ExpectPrepare(sqltpl.MySQLQuote)
	prep.ExpectQuery().WithArgs("O'Brien").
		WillReturnRows(sqlmock.NewRows([]string{"quote"}).AddRow(`'O\'Brien'`))
	prep.ExpectQuery().WithArgs("Fred").
		WillReturnRows(sqlmock.NewRows([]string{"quote"}).AddRow(`'Fred'`))

	esc := sqltpl.NewQueryEscaper(sqldb, sqltpl.MySQLQuote)
	db := sqltpl.NewDB(esc)
	out, err := db.BuildQuery("SELECT * FROM person WHERE name IN (?a)", []string{"O'Brien", "Fred"})
	c.Assert(err, IsNil)
	c.Assert(out, Equals, `SELECT * FROM person WHERE name IN ('O\'Brien', 'Fred')`)

	c.Assert(esc.Close(), IsNil)
	c.Assert(mock.ExpectationsWereMet(), IsNil)
}

func (s *EscapeSuite) TestQueryEscaperErrors(c *C) {
	tests := []struct {
		summary string
		expect  func(mock sqlmock.Sqlmock)
		err     string
	}{{
		summary: "prepare fails",
		expect: func(mock sqlmock.Sqlmock) {
			mock.ExpectPrepare(sqltpl.SQLiteQuote).WillReturnError(errors.New("no such function: quote"))
		},
		err: "cannot prepare quote statement: no such function: quote",
	}, {
		summary: "query fails",
		expect: func(mock sqlmock.Sqlmock) {
			mock.ExpectPrepare(sqltpl.SQLiteQuote).ExpectQuery().WithArgs("x").
				WillReturnError(errors.New("connection reset"))
		},
		err: "cannot quote string: connection reset",
	}, {
		summary: "result is not quoted",
		expect: func(mock sqlmock.Sqlmock) {
			mock.ExpectPrepare(sqltpl.SQLiteQuote).ExpectQuery().WithArgs("x").
				WillReturnRows(sqlmock.NewRows([]string{"quote"}).AddRow("x"))
		},
		err: `cannot quote string: expected a quoted literal, got "x"`,
	}, {
		summary: "result is NULL",
		expect: func(mock sqlmock.Sqlmock) {
			mock.ExpectPrepare(sqltpl.SQLiteQuote).ExpectQuery().WithArgs("x").
				WillReturnRows(sqlmock.NewRows([]string{"quote"}).AddRow(nil))
		},
		err: `cannot quote string: expected a quoted literal, got ""`,
	}}

	for _, t := range tests {
		sqldb, mock := s.newMock(c)
		t.expect(mock)

		esc := sqltpl.NewQueryEscaper(sqldb, sqltpl.SQLiteQuote)
		_, err := esc.EscapeString(context.Background(), "x")
		c.Check(err, ErrorMatches, regexp.QuoteMeta(t.err), Commentf("test %q failed", t.summary))
		c.Check(mock.ExpectationsWereMet(), IsNil, Commentf("test %q failed", t.summary))

		c.Check(esc.Close(), IsNil)
		sqldb.Close()
	}
}

func (s *EscapeSuite) TestEscaperErrorIsWrapped(c *C) {
	sqldb, mock := s.newMock(c)
	defer sqldb.Close()
	mock.ExpectPrepare(sqltpl.SQLiteQuote).ExpectQuery().WithArgs("Fred").
		WillReturnError(sql.ErrConnDone)

	db := sqltpl.NewDB(sqltpl.NewQueryEscaper(sqldb, sqltpl.SQLiteQuote), sqltpl.WithQuoteStyle(sqltpl.DoubledQuotes))
	_, err := db.BuildQuery("SELECT * FROM person WHERE name = ?", "Fred")
	c.Assert(errors.Is(err, sql.ErrConnDone), Equals, true)
	c.Assert(err, ErrorMatches, `cannot build query: argument 0 \(offset 34, \?s\): cannot escape string: cannot quote string: .*`)
}

func (s *EscapeSuite) TestParseQuoteStyle(c *C) {
	q, err := sqltpl.ParseQuoteStyle("doubled")
	c.Assert(err, IsNil)
	c.Assert(q, Equals, sqltpl.DoubledQuotes)
	q, err = sqltpl.ParseQuoteStyle("Backslash")
	c.Assert(err, IsNil)
	c.Assert(q, Equals, sqltpl.BackslashQuotes)
	_, err = sqltpl.ParseQuoteStyle("ansi")
	c.Assert(err, ErrorMatches, `unknown quote style "ansi"`)
}
