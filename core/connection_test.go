package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/rowset/core"
	"github.com/kndndrj/rowset/core/mock"
)

func TestConnection_Fetch(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(core.Header{"id", "name"}, mock.NewRows(0, 10))

	connection, err := core.NewConnection(&core.ConnectionParams{Type: "mock", URL: "/tmp/x.db"}, adapter)
	r.NoError(err)
	defer connection.Close()

	r.Equal([]string{"/tmp/x.db"}, adapter.URLs)
	r.Empty(adapter.Labels)
	r.NotEmpty(connection.GetID())
	r.Equal("/tmp/x.db", connection.GetName())

	rs, err := connection.Fetch(context.Background(), "_")
	r.NoError(err)
	r.Equal(10, rs.Len())

	row, ok := rs.Next()
	r.True(ok)
	r.Equal(core.Row{"id": "0", "name": "row_0"}, row)

	// a second fetch starts from the beginning again
	again, err := connection.Fetch(context.Background(), "_")
	r.NoError(err)
	r.Equal(10, again.Remaining())
}

func TestConnection_InMemory(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(nil, nil)

	_, err := core.NewConnection(&core.ConnectionParams{Name: "scratch"}, adapter)
	r.NoError(err)
	_, err = core.NewConnection(&core.ConnectionParams{URL: core.MemoryURL}, adapter)
	r.NoError(err)

	r.Equal([]string{"scratch", core.MemoryURL}, adapter.Labels)
	r.Empty(adapter.URLs)
}

func TestConnection_ConnectError(t *testing.T) {
	want := errors.New("permission denied")

	_, err := core.NewConnection(&core.ConnectionParams{URL: "/root/x.db"}, mock.NewAdapter(nil, nil, mock.AdapterWithConnectError(want)))
	require.ErrorIs(t, err, want)
}

func TestConnection_FetchError(t *testing.T) {
	r := require.New(t)

	want := errors.New("boom")
	adapter := mock.NewAdapter(nil, nil,
		mock.AdapterWithQuerySideEffect("fail", func(context.Context) error {
			return core.NewFetchError(core.ErrPrepare, "fail", want)
		}),
	)

	connection, err := core.NewConnection(&core.ConnectionParams{}, adapter)
	r.NoError(err)

	_, err = connection.Fetch(context.Background(), "fail")
	r.ErrorIs(err, core.ErrPrepare)
	r.ErrorIs(err, want)

	r.Panics(func() {
		connection.MustFetch("fail")
	})
	r.NotPanics(func() {
		connection.MustFetch("ok")
	})
}

func TestConnection_Exec(t *testing.T) {
	r := require.New(t)

	connection, err := core.NewConnection(&core.ConnectionParams{}, mock.NewAdapter(nil, nil, mock.AdapterWithAffectedRows(3)))
	r.NoError(err)

	n, err := connection.Exec(context.Background(), "insert")
	r.NoError(err)
	r.Equal(int64(3), n)
}

func TestConnection_ExpandsParams(t *testing.T) {
	r := require.New(t)

	t.Setenv("ROWSET_CONN_URL", "/data/app.db")

	params := &core.ConnectionParams{ID: "c1", Name: "app", Type: "mock", URL: "{{ env `ROWSET_CONN_URL` }}"}
	adapter := mock.NewAdapter(nil, nil)

	connection, err := core.NewConnection(params, adapter)
	r.NoError(err)

	r.Equal(core.ConnectionID("c1"), connection.GetID())
	r.Equal("/data/app.db", connection.GetURL())
	r.Equal("mock", connection.GetType())
	r.Same(params, connection.GetParams())
	r.Equal([]string{"/data/app.db"}, adapter.URLs)

	b, err := json.Marshal(connection)
	r.NoError(err)
	r.JSONEq(`{"id":"c1","name":"app","type":"mock","url":"/data/app.db"}`, string(b))
}

func TestConnectionParams_ExpandStrict(t *testing.T) {
	r := require.New(t)

	_, err := (&core.ConnectionParams{URL: "{{ nope }}"}).ExpandStrict()
	r.ErrorContains(err, "expand url")

	p, err := (&core.ConnectionParams{Name: "{{ exec `echo hi` }}"}).ExpandStrict()
	r.NoError(err)
	r.Equal("hi", p.Name)
	r.True(p.InMemory())
}

func TestConnection_WithoutExpansion(t *testing.T) {
	r := require.New(t)

	t.Setenv("ROWSET_CONN_URL", "/data/app.db")

	params := &core.ConnectionParams{URL: "/tmp/{{ env `ROWSET_CONN_URL` }}.db"}
	adapter := mock.NewAdapter(nil, nil)

	connection, err := core.NewConnection(params, adapter, core.WithoutExpansion())
	r.NoError(err)

	r.Equal("/tmp/{{ env `ROWSET_CONN_URL` }}.db", connection.GetURL())
	r.Equal([]string{"/tmp/{{ env `ROWSET_CONN_URL` }}.db"}, adapter.URLs)
	r.NotEmpty(connection.GetID())
	// the caller's params are not modified
	r.Empty(params.ID)
}
