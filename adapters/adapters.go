package adapters

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kndndrj/rowset/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no driver registered for provided type alias")
)

// DefaultType is the engine used when params don't name one.
const DefaultType = "sqlite"

// registeredAdapters holds implemented adapters - specific adapters register themselves in their init functions.
// The main reason is to be able to compile the binary without unsupported os/arch of specific drivers.
var registeredAdapters = make(map[string]core.Adapter)

// register registers a new adapter for specific database
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	if typ == "" {
		typ = DefaultType
	}

	value, ok := registeredAdapters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTypeAlias, typ)
	}

	return value, nil
}

func (*Mux) AddAdapter(typ string, adapter core.Adapter) error {
	return register(adapter, typ)
}

// Types lists every registered type alias in sorted order.
func (*Mux) Types() []string {
	out := make([]string, 0, len(registeredAdapters))
	for k := range registeredAdapters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NewConnection is a wrapper around core.NewConnection that uses the internal mux for
// adapter registration.
func NewConnection(params *core.ConnectionParams, opts ...core.ConnectionOption) (*core.Connection, error) {
	if params.Type == "" {
		withType := *params
		withType.Type = DefaultType
		params = &withType
	}

	adapter, err := new(Mux).GetAdapter(params.Expand().Type)
	if err != nil {
		return nil, fmt.Errorf("Mux.GetAdapter: %w", err)
	}

	c, err := core.NewConnection(params, adapter, opts...)
	if err != nil {
		return nil, fmt.Errorf("core.NewConnection: %w", err)
	}

	return c, nil
}
