package core

import (
	"encoding/json"
	"fmt"
)

// MemoryURL selects a private in-memory database. An empty URL means the same.
const MemoryURL = ":memory:"

type ConnectionParams struct {
	ID   ConnectionID `json:"id"`
	Name string       `json:"name"`
	Type string       `json:"type"`
	URL  string       `json:"url"`
}

// Expand returns a copy of the original parameters with expanded fields
func (p *ConnectionParams) Expand() *ConnectionParams {
	return &ConnectionParams{
		ID:   ConnectionID(expandOrDefault(string(p.ID))),
		Name: expandOrDefault(p.Name),
		Type: expandOrDefault(p.Type),
		URL:  expandOrDefault(p.URL),
	}
}

// ExpandStrict is like Expand, but reports the first field that fails to render.
func (p *ConnectionParams) ExpandStrict() (*ConnectionParams, error) {
	fields := []struct {
		name string
		in   string
	}{
		{name: "id", in: string(p.ID)},
		{name: "name", in: p.Name},
		{name: "type", in: p.Type},
		{name: "url", in: p.URL},
	}

	out := make([]string, len(fields))
	for i, f := range fields {
		ex, err := expand(f.in)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", f.name, err)
		}
		out[i] = ex
	}

	return &ConnectionParams{
		ID:   ConnectionID(out[0]),
		Name: out[1],
		Type: out[2],
		URL:  out[3],
	}, nil
}

// InMemory reports whether the params point at an in-memory database.
func (p *ConnectionParams) InMemory() bool {
	return p.URL == "" || p.URL == MemoryURL
}

func (p *ConnectionParams) String() string {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Sprintf("%s(%s)", p.Type, p.URL)
	}
	return string(b)
}
