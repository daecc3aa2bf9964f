//go:build cgo

package adapters

import (
	"fmt"

	"crawshaw.io/sqlite"

	"github.com/kndndrj/rowset/core"
)

// Register client
func init() {
	_ = register(&SQLite3{}, "sqlite3", "crawshaw")
}

var _ core.Adapter = (*SQLite3)(nil)

// SQLite3 links the C sqlite library through cgo.
type SQLite3 struct{}

func (s *SQLite3) open(path string) (core.Driver, error) {
	flags := sqlite.SQLITE_OPEN_READWRITE | sqlite.SQLITE_OPEN_CREATE | sqlite.SQLITE_OPEN_URI | sqlite.SQLITE_OPEN_NOMUTEX
	conn, err := sqlite.OpenConn(path, flags)
	if err != nil {
		return nil, err
	}

	return newSQLiteDriver(crawshawConn{c: conn})
}

func (s *SQLite3) Connect(url string) (core.Driver, error) {
	d, err := s.open(url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlite3 database: %w", err)
	}
	return d, nil
}

func (s *SQLite3) ConnectInMemory(label string) (core.Driver, error) {
	d, err := s.open(core.MemoryURL)
	if err != nil {
		return nil, fmt.Errorf("unable to open in-memory sqlite3 database %q: %w", label, err)
	}
	return d, nil
}

type crawshawConn struct {
	c *sqlite.Conn
}

func (cc crawshawConn) prepare(query string) (sqliteStmt, int, error) {
	stmt, trailing, err := cc.c.PrepareTransient(query)
	if err != nil {
		return nil, 0, err
	}
	if stmt == nil {
		return nil, trailing, nil
	}
	return crawshawStmt{Stmt: stmt}, trailing, nil
}

func (cc crawshawConn) changes() int {
	return cc.c.Changes()
}

func (cc crawshawConn) interrupt(done <-chan struct{}) <-chan struct{} {
	return cc.c.SetInterrupt(done)
}

func (cc crawshawConn) Close() error {
	return cc.c.Close()
}

type crawshawStmt struct {
	*sqlite.Stmt
}

func (s crawshawStmt) ColumnKind(col int) core.Kind {
	switch s.ColumnType(col) {
	case sqlite.SQLITE_INTEGER:
		return core.KindInteger
	case sqlite.SQLITE_FLOAT:
		return core.KindReal
	case sqlite.SQLITE_TEXT:
		return core.KindText
	case sqlite.SQLITE_BLOB:
		return core.KindBlob
	case sqlite.SQLITE_NULL:
		return core.KindNull
	default:
		return core.Kind(-1)
	}
}
