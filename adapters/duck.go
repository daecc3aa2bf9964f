//go:build cgo && ((darwin && (amd64 || arm64)) || (linux && (amd64 || arm64 || riscv64)))

package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marcboeker/go-duckdb"

	"github.com/kndndrj/rowset/core"
	"github.com/kndndrj/rowset/core/builders"
)

// Register client
func init() {
	_ = register(&Duck{}, "duck", "duckdb")
}

var _ core.Adapter = (*Duck)(nil)

type Duck struct{}

func openDuck(url string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", url)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func (d *Duck) Connect(url string) (core.Driver, error) {
	db, err := openDuck(url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to duckdb database: %w", err)
	}

	return &duckDriver{
		c: newDuckClient(db),
	}, nil
}

// ConnectInMemory opens a new duckdb instance. Each sql.DB gets its own connector,
// so instances are never shared.
func (d *Duck) ConnectInMemory(label string) (core.Driver, error) {
	db, err := openDuck("")
	if err != nil {
		return nil, fmt.Errorf("unable to open in-memory duckdb database %q: %w", label, err)
	}

	return &duckDriver{
		c: newDuckClient(db),
	}, nil
}

func newDuckClient(db *sql.DB) *builders.Client {
	return builders.NewClient(db,
		builders.WithCustomTypeProcessor("DECIMAL", func(v any) any {
			dec, ok := v.(duckdb.Decimal)
			if !ok {
				return v
			}
			return dec.Float64()
		}),
		builders.WithCustomTypeProcessor("HUGEINT", processBigInt),
		builders.WithCustomTypeProcessor("UHUGEINT", processBigInt),
		builders.WithCustomTypeProcessor("UUID", processUUID),
		builders.WithCustomTypeProcessor("DATE", processTime(time.DateOnly)),
		builders.WithCustomTypeProcessor("TIME", processTime("15:04:05.999999")),
		builders.WithDefaultTypeProcessor(processDuckScalar),
		builders.WithCustomTypeProcessor("INTERVAL", func(v any) any {
			iv, ok := v.(duckdb.Interval)
			if !ok {
				return v
			}
			return fmt.Sprintf("%d months %d days %d microseconds", iv.Months, iv.Days, iv.Micros)
		}),
	)
}
