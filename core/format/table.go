package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kndndrj/rowset/core"
)

var _ core.Formatter = (*Table)(nil)

type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (tf *Table) Name() string {
	return "table"
}

func (tf *Table) Format(header core.Header, rows []core.Row) ([]byte, error) {
	tableHeaders := make(table.Row, len(header))
	for i, h := range header {
		tableHeaders[i] = h
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tr := make(table.Row, len(header))
		for i, col := range header {
			tr[i] = row[col]
		}
		tableRows = append(tableRows, tr)
	}

	t := table.NewWriter()
	t.AppendHeader(tableHeaders)
	t.AppendRows(tableRows)
	t.AppendSeparator()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false

	return []byte(t.Render() + "\n"), nil
}
