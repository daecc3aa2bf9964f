// Package testhelpers provides helpers for integration tests.
package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/rowset/core"
)

// GetResult runs query on the connection and drains every row.
func GetResult(t *testing.T, c *core.Connection, query string) (core.Header, []core.Row, error) {
	t.Helper()

	rs, err := c.Fetch(context.Background(), query)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]core.Row, 0, rs.Len())
	for row := range rs.All() {
		rows = append(rows, row)
	}
	require.Zero(t, rs.Remaining())

	return rs.Header(), rows, nil
}

// GetTestDataPath returns the path to the testdata directory.
func GetTestDataPath() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get current file path")
	}

	return filepath.Join(filepath.Dir(currentFile), "../testdata"), nil
}

// GetTestDataFile returns a file from the testdata directory.
func GetTestDataFile(filename string) (*os.File, error) {
	testDataPath, err := GetTestDataPath()
	if err != nil {
		return nil, err
	}

	return os.Open(filepath.Join(testDataPath, filename))
}

// Seed executes every statement of a testdata script on the connection.
// Statements are split on a semicolon at the end of a line.
func Seed(ctx context.Context, c *core.Connection, filename string) error {
	path, err := GetTestDataPath()
	if err != nil {
		return err
	}

	b, err := os.ReadFile(filepath.Join(path, filename))
	if err != nil {
		return err
	}

	for _, stmt := range strings.Split(string(b), ";\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := c.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("seed %s: %w", filename, err)
		}
	}

	return nil
}
