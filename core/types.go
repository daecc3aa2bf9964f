package core

type (
	// Formatter converts header and rows to bytes
	Formatter interface {
		Format(header Header, rows []Row) ([]byte, error)
		Name() string
	}
)

type (
	// Row maps a column name to the textual form of its cell.
	Row map[string]string

	// Header holds column names in the order the engine returned them.
	Header []string
)
