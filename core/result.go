package core

import (
	"fmt"
	"iter"
)

// ResultSet is the fully materialized output of one query.
// It can be walked front to back exactly once; a drained result set stays drained.
type ResultSet struct {
	header Header
	rows   [][]Value
	cursor int
}

// NewResultSet takes ownership of rows. Every row must have one value per header column.
func NewResultSet(header Header, rows [][]Value) *ResultSet {
	if header == nil {
		header = Header{}
	}
	return &ResultSet{
		header: header,
		rows:   rows,
	}
}

func (rs *ResultSet) Header() Header {
	return rs.header
}

// Len returns the number of rows the query produced, consumed or not.
func (rs *ResultSet) Len() int {
	return len(rs.rows)
}

// Remaining returns the number of rows not yet handed out.
func (rs *ResultSet) Remaining() int {
	return len(rs.rows) - rs.cursor
}

// NextValues returns the next row with its typed cells.
func (rs *ResultSet) NextValues() (map[string]Value, bool) {
	values, ok := rs.advance()
	if !ok {
		return nil, false
	}

	out := make(map[string]Value, len(values))
	for i, v := range values {
		out[rs.columnName(i)] = v
	}
	return out, true
}

// Next returns the next row, or false once the result set is exhausted.
func (rs *ResultSet) Next() (Row, bool) {
	values, ok := rs.advance()
	if !ok {
		return nil, false
	}

	row := make(Row, len(values))
	for i, v := range values {
		row[rs.columnName(i)] = v.String()
	}
	return row, true
}

// All drains the remaining rows. Breaking out of the loop leaves the rest for later calls.
func (rs *ResultSet) All() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for {
			row, ok := rs.Next()
			if !ok || !yield(row) {
				return
			}
		}
	}
}

func (rs *ResultSet) advance() ([]Value, bool) {
	if rs.cursor >= len(rs.rows) {
		return nil, false
	}

	values := rs.rows[rs.cursor]
	// drop the reference so consumed rows can be collected
	rs.rows[rs.cursor] = nil
	rs.cursor++
	return values, true
}

func (rs *ResultSet) columnName(i int) string {
	if i < len(rs.header) {
		return rs.header[i]
	}
	return fmt.Sprintf("<unknown-field-%d>", i)
}
