package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type (
	// Adapter opens databases of one engine type.
	Adapter interface {
		// Connect opens (or creates) the database at url.
		Connect(url string) (Driver, error)
		// ConnectInMemory opens a private in-memory database. Label is informational.
		ConnectInMemory(label string) (Driver, error)
	}

	// Driver is an open database handle of a specific engine.
	Driver interface {
		// Fetch runs a read query and materializes every row.
		Fetch(ctx context.Context, query string) (*ResultSet, error)
		// Exec runs a statement and returns the number of affected rows.
		Exec(ctx context.Context, query string) (int64, error)
		Close() error
	}
)

type ConnectionID string

// Connection is an open database. It is not safe for concurrent use.
type Connection struct {
	params           *ConnectionParams
	unexpandedParams *ConnectionParams

	driver Driver
	log    Logger
}

type connectionConfig struct {
	log     Logger
	literal bool
}

type ConnectionOption func(*connectionConfig)

func WithLogger(l Logger) ConnectionOption {
	return func(c *connectionConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithoutExpansion uses the params exactly as given: templates in any
// field are left unrendered.
func WithoutExpansion() ConnectionOption {
	return func(c *connectionConfig) {
		c.literal = true
	}
}

func (c *Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.params)
}

func NewConnection(params *ConnectionParams, adapter Adapter, opts ...ConnectionOption) (*Connection, error) {
	config := &connectionConfig{
		log: nopLogger{},
	}
	for _, opt := range opts {
		opt(config)
	}

	var expanded *ConnectionParams
	if config.literal {
		p := *params
		expanded = &p
	} else {
		expanded = params.Expand()
	}

	if expanded.ID == "" {
		expanded.ID = ConnectionID(uuid.New().String())
	}

	var (
		driver Driver
		err    error
	)
	if expanded.InMemory() {
		if expanded.Name == "" {
			expanded.Name = MemoryURL
		}
		driver, err = adapter.ConnectInMemory(expanded.Name)
		if err != nil {
			return nil, fmt.Errorf("adapter.ConnectInMemory: %w", err)
		}
	} else {
		if expanded.Name == "" {
			expanded.Name = expanded.URL
		}
		driver, err = adapter.Connect(expanded.URL)
		if err != nil {
			return nil, fmt.Errorf("adapter.Connect: %w", err)
		}
	}

	config.log.Debugf("opened %s connection %q (%s)", expanded.Type, expanded.Name, expanded.ID)

	return &Connection{
		params:           expanded,
		unexpandedParams: params,

		driver: driver,
		log:    config.log,
	}, nil
}

func (c *Connection) GetID() ConnectionID {
	return c.params.ID
}

func (c *Connection) GetName() string {
	return c.params.Name
}

func (c *Connection) GetType() string {
	return c.params.Type
}

func (c *Connection) GetURL() string {
	return c.params.URL
}

// GetParams returns the original source for this connection
func (c *Connection) GetParams() *ConnectionParams {
	return c.unexpandedParams
}

// Fetch runs query and returns all of its rows, converted to text.
//
// The query is passed to the engine verbatim: there is no parameter binding,
// so never build it from untrusted input.
func (c *Connection) Fetch(ctx context.Context, query string) (*ResultSet, error) {
	start := time.Now()

	rs, err := c.driver.Fetch(ctx, query)
	if err != nil {
		c.log.Debugf("fetch on %q failed: %s", c.params.Name, err)
		return nil, err
	}

	c.log.Debugf("fetched %d rows from %q in %s", rs.Len(), c.params.Name, time.Since(start))
	return rs, nil
}

// MustFetch is like Fetch but panics on any failure.
func (c *Connection) MustFetch(query string) *ResultSet {
	rs, err := c.Fetch(context.Background(), query)
	if err != nil {
		panic(err)
	}
	return rs
}

// Exec runs a statement that does not return rows and reports the affected row count.
func (c *Connection) Exec(ctx context.Context, query string) (int64, error) {
	affected, err := c.driver.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("driver.Exec: %w", err)
	}
	return affected, nil
}

func (c *Connection) Close() error {
	c.log.Debugf("closing connection %q", c.params.Name)
	return c.driver.Close()
}
