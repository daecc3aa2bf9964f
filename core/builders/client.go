package builders

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kndndrj/rowset/core"
)

// default sql client used by the engine specific adapters
type Client struct {
	db             *sql.DB
	typeProcessors map[string]func(any) any
	fallback       func(any) any
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
		fallback:       func(v any) any { return v },
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Client{
		db:             db,
		typeProcessors: config.typeProcessors,
		fallback:       config.fallback,
	}
}

func (c *Client) Close() error {
	return c.db.Close()
}

// Exec executes a statement and returns the number of affected rows.
func (c *Client) Exec(ctx context.Context, query string) (int64, error) {
	res, err := c.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// typeName normalizes a database type name: "DECIMAL(18,3)" -> "decimal".
func typeName(typ string) string {
	if i := strings.IndexByte(typ, '('); i >= 0 {
		typ = typ[:i]
	}
	return strings.ToLower(strings.TrimSpace(typ))
}

func (c *Client) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[typeName(typ)]
	if ok {
		return proc
	}

	return c.fallback
}

// Fetch prepares query, reads the column names once, then walks every row
// and converts each cell to a core.Value. All rows are in memory before it returns.
func (c *Client) Fetch(ctx context.Context, query string) (*core.ResultSet, error) {
	stmt, err := c.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, core.NewFetchError(core.ErrPrepare, query, err)
	}
	defer stmt.Close()

	dbRows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, core.NewFetchError(core.ErrRowRead, query, err)
	}
	defer dbRows.Close()

	header, err := dbRows.Columns()
	if err != nil {
		return nil, core.NewFetchError(core.ErrRowRead, query, err)
	}

	dbCols, err := dbRows.ColumnTypes()
	if err != nil {
		return nil, core.NewFetchError(core.ErrRowRead, query, err)
	}

	procs := make([]func(any) any, len(dbCols))
	for i, col := range dbCols {
		procs[i] = c.getTypeProcessor(col.DatabaseTypeName())
	}

	columns := make([]any, len(header))
	columnPointers := make([]any, len(header))
	for i := range columns {
		columnPointers[i] = &columns[i]
	}

	rows := make([][]core.Value, 0)
	for dbRows.Next() {
		if err := dbRows.Scan(columnPointers...); err != nil {
			return nil, core.NewFetchError(core.ErrRowRead, query, err)
		}

		row := make([]core.Value, len(header))
		for i := range columns {
			val := columns[i]
			if i < len(procs) {
				val = procs[i](val)
			}

			row[i], err = core.Classify(val)
			if err != nil {
				return nil, core.NewFetchError(core.ErrValueDecode, query, err)
			}
		}

		rows = append(rows, row)
	}

	if err := dbRows.Err(); err != nil {
		return nil, core.NewFetchError(core.ErrRowRead, query, err)
	}

	return core.NewResultSet(header, rows), nil
}
