//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || loong64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (386 || amd64 || arm64))

package adapters

import (
	"fmt"

	"zombiezen.com/go/sqlite"

	"github.com/kndndrj/rowset/core"
)

// Register client
func init() {
	_ = register(&SQLite{}, "sqlite", "modernc", "zombiezen")
}

var _ core.Adapter = (*SQLite)(nil)

// SQLite uses the pure go port of sqlite.
type SQLite struct{}

func (s *SQLite) open(path string) (core.Driver, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenURI)
	if err != nil {
		return nil, err
	}

	return newSQLiteDriver(zombiezenConn{c: conn})
}

func (s *SQLite) Connect(url string) (core.Driver, error) {
	d, err := s.open(url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlite database: %w", err)
	}
	return d, nil
}

// ConnectInMemory opens a fresh ":memory:" database; every sqlite connection
// to it gets its own private database.
func (s *SQLite) ConnectInMemory(label string) (core.Driver, error) {
	d, err := s.open(core.MemoryURL)
	if err != nil {
		return nil, fmt.Errorf("unable to open in-memory sqlite database %q: %w", label, err)
	}
	return d, nil
}

type zombiezenConn struct {
	c *sqlite.Conn
}

func (z zombiezenConn) prepare(query string) (sqliteStmt, int, error) {
	stmt, trailing, err := z.c.PrepareTransient(query)
	if err != nil {
		return nil, 0, err
	}
	if stmt == nil {
		return nil, trailing, nil
	}
	return zombiezenStmt{Stmt: stmt}, trailing, nil
}

func (z zombiezenConn) changes() int {
	return z.c.Changes()
}

func (z zombiezenConn) interrupt(done <-chan struct{}) <-chan struct{} {
	return z.c.SetInterrupt(done)
}

func (z zombiezenConn) Close() error {
	return z.c.Close()
}

type zombiezenStmt struct {
	*sqlite.Stmt
}

func (s zombiezenStmt) ColumnKind(col int) core.Kind {
	switch s.ColumnType(col) {
	case sqlite.TypeInteger:
		return core.KindInteger
	case sqlite.TypeFloat:
		return core.KindReal
	case sqlite.TypeText:
		return core.KindText
	case sqlite.TypeBlob:
		return core.KindBlob
	case sqlite.TypeNull:
		return core.KindNull
	default:
		return core.Kind(-1)
	}
}
