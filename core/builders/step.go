package builders

import (
	"github.com/kndndrj/rowset/core"
)

// Stepper is a prepared statement that reports the storage class of every cell
// instead of converting it by declared column type.
type Stepper interface {
	Step() (rowReturned bool, err error)
	ColumnCount() int
	ColumnName(col int) string
	ColumnKind(col int) core.Kind
	ColumnInt64(col int) int64
	ColumnFloat(col int) float64
	ColumnText(col int) string
}

// Materialize steps stmt to completion and collects every row.
// Column names are read once, before the first step.
func Materialize(query string, stmt Stepper) (*core.ResultSet, error) {
	header := make(core.Header, stmt.ColumnCount())
	for i := range header {
		header[i] = stmt.ColumnName(i)
	}

	rows := make([][]core.Value, 0)
	for {
		ok, err := stmt.Step()
		if err != nil {
			return nil, core.NewFetchError(core.ErrRowRead, query, err)
		}
		if !ok {
			break
		}

		row := make([]core.Value, len(header))
		for i := range row {
			row[i], err = cell(stmt, i)
			if err != nil {
				return nil, core.NewFetchError(core.ErrValueDecode, query, err)
			}
		}
		rows = append(rows, row)
	}

	return core.NewResultSet(header, rows), nil
}

func cell(stmt Stepper, col int) (core.Value, error) {
	switch kind := stmt.ColumnKind(col); kind {
	case core.KindNull:
		return core.Null(), nil
	case core.KindInteger:
		return core.Integer(stmt.ColumnInt64(col)), nil
	case core.KindReal:
		return core.Real(stmt.ColumnFloat(col)), nil
	case core.KindText:
		return core.Text(stmt.ColumnText(col)), nil
	case core.KindBlob:
		return core.Blob(), nil
	default:
		return core.Value{}, &core.DecodeError{Value: kind, Reason: "unknown storage class"}
	}
}
