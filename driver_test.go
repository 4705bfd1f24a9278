// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqltpl_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
)

// This file contains a wrapper sql.Driver over the SQLite driver which counts
// the statements prepared, closed and queried on each connection. The counts
// are indexed by test name, which is passed in the DSN.

type driverCounts struct {
	prepared int
	closed   int
	queries  int
}

var counts = map[string]*driverCounts{}
var countsMutex sync.Mutex

func countsFor(testName string) driverCounts {
	countsMutex.Lock()
	defer countsMutex.Unlock()
	if c, ok := counts[testName]; ok {
		return *c
	}
	return driverCounts{}
}

func record(testName string, f func(*driverCounts)) {
	countsMutex.Lock()
	defer countsMutex.Unlock()
	c, ok := counts[testName]
	if !ok {
		c = &driverCounts{}
		counts[testName] = c
	}
	f(c)
}

type countingDriver struct {
	driver.Driver
}

type countingConn struct {
	testName string
	*sqlite3.SQLiteConn
}

type countingStmt struct {
	testName string
	*sqlite3.SQLiteStmt
}

func (c *countingConn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	s, err := c.SQLiteConn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	sm, ok := s.(*sqlite3.SQLiteStmt)
	if !ok {
		panic("internal error: base driver is not SQLite")
	}
	record(c.testName, func(dc *driverCounts) { dc.prepared++ })
	return &countingStmt{SQLiteStmt: sm, testName: c.testName}, nil
}

func (c *countingConn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

func (s *countingStmt) Close() error {
	record(s.testName, func(dc *driverCounts) { dc.closed++ })
	return s.SQLiteStmt.Close()
}

func (s *countingStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	rows, err := s.SQLiteStmt.QueryContext(ctx, args)
	if err == nil {
		record(s.testName, func(dc *driverCounts) { dc.queries++ })
	}
	return rows, err
}

const testNameTag = "testName"

// Open expects the DSN to contain the test name using the testNameTag
// attribute.
func (d *countingDriver) Open(name string) (driver.Conn, error) {
	var testName string
	if _, params, ok := strings.Cut(name, "?"); ok {
		for _, p := range strings.Split(params, "&") {
			if v, ok := strings.CutPrefix(p, testNameTag+"="); ok {
				testName = v
			}
		}
	}
	if testName == "" {
		panic("internal error: testName is not found in the db DSN")
	}

	baseConn, err := d.Driver.Open(name)
	if err != nil {
		return nil, err
	}
	conn, ok := baseConn.(*sqlite3.SQLiteConn)
	if !ok {
		panic("internal error: base driver is not SQLite")
	}
	return &countingConn{SQLiteConn: conn, testName: testName}, nil
}

func init() {
	sql.Register("sqlite3_counted", &countingDriver{
		&sqlite3.SQLiteDriver{},
	})
}
