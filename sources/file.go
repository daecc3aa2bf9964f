package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kndndrj/rowset/core"
)

var ErrConnectionNotFound = errors.New("connection not found")

// File reads connection params from a JSON file holding an array of
// {"id", "name", "type", "url"} objects. Fields may use the
// {{ env }}, {{ exec }}, {{ home }} and {{ file }} templates; they are
// expanded when a connection is opened, not when the file is read.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{
		path: path,
	}
}

func (f *File) Name() string {
	return f.path
}

// Load returns every connection in the file. A missing file yields no connections.
func (f *File) Load() ([]*core.ConnectionParams, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var params []*core.ConnectionParams
	if err := json.Unmarshal(b, &params); err != nil {
		return nil, fmt.Errorf("json.Unmarshal %s: %w", f.path, err)
	}

	return params, nil
}

// Get returns the connection whose ID or name equals key.
func (f *File) Get(key string) (*core.ConnectionParams, error) {
	params, err := f.Load()
	if err != nil {
		return nil, err
	}

	for _, p := range params {
		if p == nil {
			continue
		}
		if string(p.ID) == key || p.Name == key {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: %q in %s", ErrConnectionNotFound, key, f.path)
}
