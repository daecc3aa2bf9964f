package sources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/rowset/core"
	"github.com/kndndrj/rowset/sources"
)

const testConfig = `[
  {"id": "local", "name": "Local file", "type": "sqlite", "url": "{{ env \"ROWSET_DATA\" }}/app.db"},
  {"id": "scratch", "name": "Scratch", "type": "sqlite", "url": ":memory:"}
]`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "connections.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFile_Load(t *testing.T) {
	r := require.New(t)

	params, err := sources.NewFile(writeConfig(t, testConfig)).Load()
	r.NoError(err)
	r.Len(params, 2)

	r.Equal(&core.ConnectionParams{
		ID:   "local",
		Name: "Local file",
		Type: "sqlite",
		URL:  `{{ env "ROWSET_DATA" }}/app.db`,
	}, params[0])

	t.Setenv("ROWSET_DATA", "/srv")
	r.Equal("/srv/app.db", params[0].Expand().URL)
	r.True(params[1].InMemory())
}

func TestFile_Get(t *testing.T) {
	r := require.New(t)

	file := sources.NewFile(writeConfig(t, testConfig))

	byID, err := file.Get("scratch")
	r.NoError(err)
	r.Equal("Scratch", byID.Name)

	byName, err := file.Get("Local file")
	r.NoError(err)
	r.Equal(core.ConnectionID("local"), byName.ID)

	_, err = file.Get("nope")
	r.ErrorIs(err, sources.ErrConnectionNotFound)
}

func TestFile_Missing(t *testing.T) {
	params, err := sources.NewFile(filepath.Join(t.TempDir(), "none.json")).Load()
	require.NoError(t, err)
	require.Empty(t, params)
}

func TestFile_Invalid(t *testing.T) {
	_, err := sources.NewFile(writeConfig(t, "{not json")).Load()
	require.Error(t, err)
}
