package adapters

import (
	"context"
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/kndndrj/rowset/core"
	"github.com/kndndrj/rowset/core/builders"
)

var _ core.Driver = (*duckDriver)(nil)

type duckDriver struct {
	c *builders.Client
}

func (d *duckDriver) Fetch(ctx context.Context, query string) (*core.ResultSet, error) {
	return d.c.Fetch(ctx, query)
}

func (d *duckDriver) Exec(ctx context.Context, query string) (int64, error) {
	return d.c.Exec(ctx, query)
}

// Close closes the connection to the database.
func (d *duckDriver) Close() error {
	return d.c.Close()
}

// processBigInt keeps 128 bit integers as integers when they fit, otherwise as text.
func processBigInt(v any) any {
	var n *big.Int
	switch val := v.(type) {
	case *big.Int:
		n = val
	case big.Int:
		n = &val
	default:
		return v
	}

	if n == nil {
		return nil
	}
	if n.IsInt64() {
		return n.Int64()
	}
	return n.String()
}

// processUUID renders uuid cells in their canonical text form.
func processUUID(v any) any {
	switch val := v.(type) {
	case []byte:
		id, err := uuid.FromBytes(val)
		if err != nil {
			return v
		}
		return id.String()
	case [16]byte:
		return uuid.UUID(val).String()
	case fmt.Stringer:
		return val.String()
	}

	// named [16]byte types without a value receiver String method
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Len() == 16 && rv.Type().Elem().Kind() == reflect.Uint8 {
		var id uuid.UUID
		reflect.Copy(reflect.ValueOf(id[:]), rv)
		return id.String()
	}
	return v
}

// duckTimestampFormat matches how duckdb prints timestamps with a time zone.
const duckTimestampFormat = "2006-01-02 15:04:05.999999-07"

func processTime(layout string) func(any) any {
	return func(v any) any {
		t, ok := v.(time.Time)
		if !ok {
			return v
		}
		return t.Format(layout)
	}
}

// processDuckScalar renders the remaining non storage types: timestamps as
// text and booleans as 0 or 1.
func processDuckScalar(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format(duckTimestampFormat)
	case bool:
		if val {
			return int64(1)
		}
		return int64(0)
	default:
		return v
	}
}
