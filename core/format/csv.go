package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/kndndrj/rowset/core"
)

var _ core.Formatter = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) Name() string {
	return "csv"
}

func (cf *CSV) records(header core.Header, rows []core.Row) [][]string {
	data := [][]string{
		header,
	}
	for _, row := range rows {
		csvRow := make([]string, len(header))
		for i, col := range header {
			csvRow[i] = row[col]
		}
		data = append(data, csvRow)
	}

	return data
}

func (cf *CSV) Format(header core.Header, rows []core.Row) ([]byte, error) {
	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(cf.records(header, rows))
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
