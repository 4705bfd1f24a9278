// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqltpl_test

import (
	"context"
	"database/sql"
	"fmt"

	. "gopkg.in/check.v1"

	"github.com/canonical/sqltpl"
)

type CacheSuite struct{}

var _ = Suite(&CacheSuite{})

func (s *CacheSuite) TestParsedTemplateReuse(c *C) {
	db := sqltpl.NewDB(sqltpl.BackslashEscaper)
	c.Assert(db.CachedTemplates(), Equals, 0)

	sql1, err := db.BuildQuery("SELECT * FROM t WHERE id = ?d", 1)
	c.Assert(err, IsNil)
	c.Assert(db.CachedTemplates(), Equals, 1)
	pt, ok := db.CachedTemplate("SELECT * FROM t WHERE id = ?d")
	c.Assert(ok, Equals, true)

	sql2, err := db.BuildQuery("SELECT * FROM t WHERE id = ?d", 2)
	c.Assert(err, IsNil)
	c.Assert(db.CachedTemplates(), Equals, 1)
	c.Assert(sql1, Equals, "SELECT * FROM t WHERE id = 1")
	c.Assert(sql2, Equals, "SELECT * FROM t WHERE id = 2")

	// The cached parse is reused rather than replaced.
	pt2, _ := db.CachedTemplate("SELECT * FROM t WHERE id = ?d")
	c.Assert(pt2, Equals, pt)
}

func (s *CacheSuite) TestBlocksCachedPerOutcome(c *C) {
	db := sqltpl.NewDB(sqltpl.BackslashEscaper)
	tmpl := "SELECT * FROM t {WHERE id = ?d}"

	_, err := db.BuildQuery(tmpl, 1)
	c.Assert(err, IsNil)
	_, err = db.BuildQuery(tmpl, sqltpl.Skip())
	c.Assert(err, IsNil)
	_, err = db.BuildQuery(tmpl, 2)
	c.Assert(err, IsNil)

	c.Assert(db.CachedTemplates(), Equals, 2)
	_, ok := db.CachedTemplate("SELECT * FROM t WHERE id = ?d")
	c.Assert(ok, Equals, true)
	_, ok = db.CachedTemplate("SELECT * FROM t ")
	c.Assert(ok, Equals, true)
}

func (s *CacheSuite) TestCacheEviction(c *C) {
	db := sqltpl.NewDB(sqltpl.BackslashEscaper, sqltpl.WithCacheSize(2))
	for i := 0; i < 5; i++ {
		_, err := db.BuildQuery(fmt.Sprintf("SELECT %d, ?d", i), i)
		c.Assert(err, IsNil)
	}
	c.Assert(db.CachedTemplates(), Equals, 2)
	_, ok := db.CachedTemplate("SELECT 4, ?d")
	c.Assert(ok, Equals, true)
	_, ok = db.CachedTemplate("SELECT 0, ?d")
	c.Assert(ok, Equals, false)
}

func (s *CacheSuite) TestCacheDisabled(c *C) {
	db := sqltpl.NewDB(sqltpl.BackslashEscaper, sqltpl.WithCacheSize(0))
	c.Assert(db.CacheEnabled(), Equals, false)
	out, err := db.BuildQuery("SELECT ?d", 3)
	c.Assert(err, IsNil)
	c.Assert(out, Equals, "SELECT 3")
	c.Assert(db.CachedTemplates(), Equals, 0)
}

func (s *CacheSuite) TestQueryEscaperPreparesOnce(c *C) {
	sqldb := s.openDB(c)
	defer sqldb.Close()
	esc := sqltpl.NewQueryEscaper(sqldb, sqltpl.SQLiteQuote)
	db := sqltpl.NewDB(esc, sqltpl.WithQuoteStyle(sqltpl.DoubledQuotes))

	out, err := db.BuildQuery("INSERT INTO person VALUES (?s, ?s, ?d)", "Fred", "O'Neil", 5)
	c.Assert(err, IsNil)
	c.Assert(out, Equals, "INSERT INTO person VALUES ('Fred', 'O''Neil', 5)")

	counts := countsFor(c.TestName())
	c.Assert(counts.prepared, Equals, 1)
	c.Assert(counts.queries, Equals, 2)
	c.Assert(counts.closed, Equals, 0)

	c.Assert(esc.Close(), IsNil)
	c.Assert(countsFor(c.TestName()).closed, Equals, 1)
	// Closing twice is harmless.
	c.Assert(esc.Close(), IsNil)

	// The escaper prepares the statement again after Close.
	out, err = esc.EscapeString(context.Background(), "it's")
	c.Assert(err, IsNil)
	c.Assert(out, Equals, "it''s")
	c.Assert(countsFor(c.TestName()).prepared, Equals, 2)
	c.Assert(esc.Close(), IsNil)
}

func (s *CacheSuite) openDB(c *C) *sql.DB {
	db, err := sql.Open("sqlite3_counted", "file:test.db?cache=shared&mode=memory&testName="+c.TestName())
	c.Assert(err, IsNil)
	// A single connection keeps the prepared statement on one driver conn.
	db.SetMaxOpenConns(1)
	return db
}
