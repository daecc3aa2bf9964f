package testhelpers

import (
	"context"
	"path/filepath"

	"github.com/kndndrj/rowset/adapters"
	"github.com/kndndrj/rowset/core"
)

// Database is a seeded database file living in a test temp directory.
type Database struct {
	ConnURL string
	Driver  *core.Connection
	TempDir string
}

// NewDatabase creates a database file of params.Type in tmpDir and runs the
// seed script on it. The params.URL is overwritten.
func NewDatabase(ctx context.Context, params *core.ConnectionParams, tmpDir, seedFile string) (*Database, error) {
	if params.Type == "" {
		params.Type = adapters.DefaultType
	}

	params.URL = filepath.Join(tmpDir, "test.db")

	driver, err := adapters.NewConnection(params)
	if err != nil {
		return nil, err
	}

	if err := Seed(ctx, driver, seedFile); err != nil {
		_ = driver.Close()
		return nil, err
	}

	return &Database{
		ConnURL: params.URL,
		Driver:  driver,
		TempDir: tmpDir,
	}, nil
}

// NewDriver opens another connection to the same file.
func (d *Database) NewDriver(params *core.ConnectionParams) (*core.Connection, error) {
	if params.URL == "" {
		params.URL = d.ConnURL
	}
	if params.Type == "" {
		params.Type = d.Driver.GetType()
	}

	return adapters.NewConnection(params)
}

func (d *Database) Close() error {
	return d.Driver.Close()
}
