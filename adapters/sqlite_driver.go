package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kndndrj/rowset/core"
	"github.com/kndndrj/rowset/core/builders"
)

var errEmptyQuery = errors.New("query contains no statement")

type (
	// sqliteStmt is a prepared statement of one of the sqlite engines.
	sqliteStmt interface {
		builders.Stepper
		Finalize() error
	}

	// sqliteConn is the part of an engine connection the driver needs.
	// prepare returns a nil statement when query holds only whitespace or comments.
	sqliteConn interface {
		prepare(query string) (stmt sqliteStmt, trailingBytes int, err error)
		changes() int
		interrupt(done <-chan struct{}) <-chan struct{}
		Close() error
	}
)

var _ core.Driver = (*sqliteDriver)(nil)

// sqliteDriver is shared by both sqlite engines (pure go and cgo).
// Cells are read by storage class, never by declared column type.
type sqliteDriver struct {
	conn sqliteConn
}

// newSQLiteDriver makes sure the database is actually usable, so open errors
// (not a database, unreadable file) don't hide until the first query.
func newSQLiteDriver(conn sqliteConn) (*sqliteDriver, error) {
	d := &sqliteDriver{conn: conn}

	// reading the schema version touches the database header
	if _, err := d.Fetch(context.Background(), "PRAGMA schema_version"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return d, nil
}

func (d *sqliteDriver) Fetch(ctx context.Context, query string) (*core.ResultSet, error) {
	defer d.conn.interrupt(d.conn.interrupt(ctx.Done()))

	stmt, _, err := d.conn.prepare(query)
	if err != nil {
		return nil, core.NewFetchError(core.ErrPrepare, query, err)
	}
	if stmt == nil {
		return nil, core.NewFetchError(core.ErrPrepare, query, errEmptyQuery)
	}
	defer stmt.Finalize()

	return builders.Materialize(query, stmt)
}

// Exec runs every statement in query and returns the rows changed by the last one.
func (d *sqliteDriver) Exec(ctx context.Context, query string) (int64, error) {
	defer d.conn.interrupt(d.conn.interrupt(ctx.Done()))

	rest := query
	for strings.TrimSpace(rest) != "" {
		stmt, trailing, err := d.conn.prepare(rest)
		if err != nil {
			return 0, err
		}
		if stmt == nil {
			break
		}

		err = drain(stmt)
		if ferr := stmt.Finalize(); err == nil {
			err = ferr
		}
		if err != nil {
			return 0, fmt.Errorf("exec %q: %w", strings.TrimSpace(rest[:len(rest)-trailing]), err)
		}

		rest = rest[len(rest)-trailing:]
	}

	return int64(d.conn.changes()), nil
}

func (d *sqliteDriver) Close() error {
	return d.conn.Close()
}

func drain(stmt sqliteStmt) error {
	for {
		more, err := stmt.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}
