package format

import (
	"encoding/json"
	"fmt"

	"github.com/kndndrj/rowset/core"
)

var _ core.Formatter = (*JSON)(nil)

type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) Name() string {
	return "json"
}

func (jf *JSON) Format(_ core.Header, rows []core.Row) ([]byte, error) {
	data := rows
	if data == nil {
		data = []core.Row{}
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}
