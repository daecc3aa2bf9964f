package mock

import (
	"context"
	"fmt"

	"github.com/kndndrj/rowset/core"
)

var _ core.Driver = (*driver)(nil)

type driver struct {
	header core.Header
	data   [][]core.Value
	config *adapterConfig
	closed bool
}

func (d *driver) Fetch(ctx context.Context, query string) (*core.ResultSet, error) {
	if d.closed {
		return nil, fmt.Errorf("driver is closed")
	}

	eff, ok := d.config.querySideEffects[query]
	if ok {
		err := eff(ctx)
		if err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	// each fetch gets its own copy, like a fresh query would
	rows := make([][]core.Value, len(d.data))
	for i, r := range d.data {
		rows[i] = append([]core.Value(nil), r...)
	}

	return core.NewResultSet(d.header, rows), nil
}

func (d *driver) Exec(ctx context.Context, query string) (int64, error) {
	eff, ok := d.config.querySideEffects[query]
	if ok {
		if err := eff(ctx); err != nil {
			return 0, fmt.Errorf("side effect error: %w", err)
		}
	}
	return d.config.affectedRows, nil
}

func (d *driver) Close() error {
	d.closed = true
	return nil
}

var _ core.Adapter = (*Adapter)(nil)

// Adapter hands out drivers that return the same canned rows for every query.
type Adapter struct {
	header core.Header
	data   [][]core.Value
	config *adapterConfig

	// Labels records every in-memory label and URL passed to the adapter.
	Labels []string
	URLs   []string
}

func NewAdapter(header core.Header, data [][]core.Value, opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		querySideEffects: make(map[string]func(context.Context) error),
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		header: header,
		data:   data,
		config: config,
	}
}

func (a *Adapter) Connect(url string) (core.Driver, error) {
	if a.config.connectErr != nil {
		return nil, a.config.connectErr
	}
	a.URLs = append(a.URLs, url)
	return a.newDriver(), nil
}

func (a *Adapter) ConnectInMemory(label string) (core.Driver, error) {
	if a.config.connectErr != nil {
		return nil, a.config.connectErr
	}
	a.Labels = append(a.Labels, label)
	return a.newDriver(), nil
}

func (a *Adapter) newDriver() *driver {
	return &driver{
		header: a.header,
		data:   a.data,
		config: a.config,
	}
}

// NewRows returns rows in form of:
//
//	{ <index>(integer), "row_<index>"(text) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) [][]core.Value {
	var rows [][]core.Value

	for i := from; i < to; i++ {
		rows = append(rows, []core.Value{core.Integer(int64(i)), core.Text(fmt.Sprintf("row_%d", i))})
	}
	return rows
}
