// Package rowset opens embedded SQL databases and returns query results as
// fully materialized sequences of column name to text mappings.
//
//	conn, err := rowset.Open("data.db")
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	rs, err := rowset.Fetch(ctx, conn, "select name, age from people")
//	if err != nil {
//		return err
//	}
//	for row := range rs.All() {
//		fmt.Println(row["name"], row["age"])
//	}
//
// Every cell is rendered as text: NULL becomes "NULL", integers and reals
// their decimal form, text is passed through and blobs become "BLOB".
package rowset

import (
	"context"

	"github.com/kndndrj/rowset/adapters"
	"github.com/kndndrj/rowset/core"
)

// Open opens (or creates) the sqlite database file at path.
// The path is handed to the engine as is.
func Open(path string, opts ...core.ConnectionOption) (*core.Connection, error) {
	return open(&core.ConnectionParams{
		Type: adapters.DefaultType,
		URL:  path,
	}, opts)
}

// OpenInMemory opens a private in-memory sqlite database named label.
// Databases opened by separate calls never see each other's data.
func OpenInMemory(label string, opts ...core.ConnectionOption) (*core.Connection, error) {
	return open(&core.ConnectionParams{
		Name: label,
		Type: adapters.DefaultType,
		URL:  core.MemoryURL,
	}, opts)
}

func open(params *core.ConnectionParams, opts []core.ConnectionOption) (*core.Connection, error) {
	adapter, err := new(adapters.Mux).GetAdapter(params.Type)
	if err != nil {
		return nil, err
	}

	return core.NewConnection(params, adapter, append(opts[:len(opts):len(opts)], core.WithoutExpansion())...)
}

// Fetch runs query on conn and returns every row. Failures are reported as
// *core.FetchError matching core.ErrPrepare, core.ErrRowRead or core.ErrValueDecode.
//
// The query is sent as is; there is no parameter binding.
func Fetch(ctx context.Context, conn *core.Connection, query string) (*core.ResultSet, error) {
	return conn.Fetch(ctx, query)
}

// MustFetch is the fail-fast variant of Fetch: it panics on any failure.
func MustFetch(conn *core.Connection, query string) *core.ResultSet {
	return conn.MustFetch(query)
}
