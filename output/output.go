package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kndndrj/rowset/core"
)

// collect drains the remaining rows of rs.
func collect(rs *core.ResultSet) []core.Row {
	rows := make([]core.Row, 0, rs.Remaining())
	for row := range rs.All() {
		rows = append(rows, row)
	}
	return rows
}

// Writer formats results into any io.Writer.
type Writer struct {
	w         io.Writer
	formatter core.Formatter
}

func NewWriter(w io.Writer, formatter core.Formatter) *Writer {
	return &Writer{
		w:         w,
		formatter: formatter,
	}
}

// Write drains rs and writes it formatted. The result set is exhausted afterwards.
func (wo *Writer) Write(rs *core.ResultSet) error {
	out, err := wo.formatter.Format(rs.Header(), collect(rs))
	if err != nil {
		return fmt.Errorf("failed to format results as %s: %w", wo.formatter.Name(), err)
	}

	_, err = wo.w.Write(out)
	return err
}

type File struct {
	fileName  string
	log       core.Logger
	formatter core.Formatter
}

func NewFile(fileName string, formatter core.Formatter, logger core.Logger) *File {
	return &File{
		fileName:  fileName,
		log:       logger,
		formatter: formatter,
	}
}

// Write saves rs to the file, creating missing parent directories.
func (co *File) Write(rs *core.ResultSet) error {
	if err := os.MkdirAll(filepath.Dir(co.fileName), 0o755); err != nil {
		return err
	}

	file, err := os.Create(co.fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	err = NewWriter(file, co.formatter).Write(rs)
	if err != nil {
		return err
	}

	co.log.Info("successfully saved " + co.formatter.Name() + " to " + co.fileName)
	return nil
}
