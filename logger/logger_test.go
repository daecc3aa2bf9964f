package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Debug("hidden")
	l.Infof("fetched %d rows", 3)
	l.Warn("careful")
	l.Errorf("failed: %s", "boom")

	out := buf.String()
	r.NotContains(out, "hidden")
	r.Contains(out, "[info]: fetched 3 rows")
	r.Contains(out, "[warn]: careful")
	r.Contains(out, "[error]: failed: boom")
}

func TestLogger_File(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "logs", "rowset.log")

	l, err := NewFile(path, LevelDebug)
	r.NoError(err)
	l.Debugf("opened %q", "x.db")
	r.NoError(l.Close())

	b, err := os.ReadFile(path)
	r.NoError(err)
	r.Contains(string(b), `[debug]: opened "x.db"`)
}

func TestParseLevel(t *testing.T) {
	r := require.New(t)

	for in, want := range map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	} {
		got, err := ParseLevel(in)
		r.NoError(err)
		r.Equal(want, got)
	}

	_, err := ParseLevel("loud")
	r.Error(err)
}

func TestDiscard(t *testing.T) {
	require.NotPanics(t, func() {
		l := Discard()
		l.Error("nobody hears this")
		_ = l.Close()
	})
}
