package format

import "github.com/kndndrj/rowset/core"

// ByName returns the formatter registered under name: csv, json or table.
// An empty name selects table.
func ByName(name string) (core.Formatter, bool) {
	switch name {
	case "csv":
		return NewCSV(), true
	case "json":
		return NewJSON(), true
	case "table", "":
		return NewTable(), true
	default:
		return nil, false
	}
}
