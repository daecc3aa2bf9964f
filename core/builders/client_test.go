package builders

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/rowset/core"
)

// setupTestClient helper function to setup a client backed by sqlmock
func setupTestClient(t *testing.T, opts ...ClientOption) (*Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewClient(db, opts...), mock
}

func drain(rs *core.ResultSet) []core.Row {
	var out []core.Row
	for row := range rs.All() {
		out = append(out, row)
	}
	return out
}

func Test_typeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"INTEGER", "integer"},
		{"DECIMAL(18,3)", "decimal"},
		{" varchar (20)", "varchar"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typeName(tt.input))
	}
}

func TestClient_Fetch(t *testing.T) {
	r := require.New(t)
	client, mock := setupTestClient(t)

	rows := mock.NewRowsWithColumnDefinition(
		mock.NewColumn("id").OfType("INTEGER", int64(0)),
		mock.NewColumn("name").OfType("TEXT", ""),
		mock.NewColumn("score").OfType("REAL", float64(0)),
		mock.NewColumn("data").OfType("BLOB", []byte{}),
	).
		AddRow(int64(-42), "alice", 1.25, []byte{1, 2, 3}).
		AddRow(nil, nil, nil, []byte{})

	mock.ExpectPrepare("select * from t").ExpectQuery().WillReturnRows(rows)

	rs, err := client.Fetch(context.Background(), "select * from t")
	r.NoError(err)
	r.Equal(core.Header{"id", "name", "score", "data"}, rs.Header())

	r.Equal([]core.Row{
		{"id": "-42", "name": "alice", "score": "1.25", "data": "BLOB"},
		{"id": "NULL", "name": "NULL", "score": "NULL", "data": "BLOB"},
	}, drain(rs))

	_, ok := rs.Next()
	r.False(ok)
	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_Fetch_DefaultTypeProcessor(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	newRows := func(mock sqlmock.Sqlmock) *sqlmock.Rows {
		return mock.NewRowsWithColumnDefinition(
			mock.NewColumn("created").OfType("TIMESTAMP", time.Time{}),
			mock.NewColumn("n").OfType("INTEGER", int64(0)),
		).AddRow(ts, int64(5))
	}

	t.Run("values are classified as returned", func(t *testing.T) {
		client, mock := setupTestClient(t)
		mock.ExpectPrepare("q").ExpectQuery().WillReturnRows(newRows(mock))

		_, err := client.Fetch(context.Background(), "q")
		assert.ErrorIs(t, err, core.ErrValueDecode)
	})

	t.Run("fallback runs for types without a processor", func(t *testing.T) {
		r := require.New(t)
		client, mock := setupTestClient(t,
			WithCustomTypeProcessor("INTEGER", func(v any) any { return v }),
			WithDefaultTypeProcessor(func(v any) any {
				if tm, ok := v.(time.Time); ok {
					return tm.Format(time.DateTime)
				}
				return "unexpected"
			}),
		)
		mock.ExpectPrepare("q").ExpectQuery().WillReturnRows(newRows(mock))

		rs, err := client.Fetch(context.Background(), "q")
		r.NoError(err)
		r.Equal([]core.Row{{"created": "2024-03-01 12:30:00", "n": "5"}}, drain(rs))
	})
}

func TestClient_Fetch_Empty(t *testing.T) {
	r := require.New(t)
	client, mock := setupTestClient(t)

	rows := mock.NewRowsWithColumnDefinition(mock.NewColumn("a").OfType("INTEGER", int64(0)))
	mock.ExpectPrepare("select a from t where 0").ExpectQuery().WillReturnRows(rows)

	rs, err := client.Fetch(context.Background(), "select a from t where 0")
	r.NoError(err)
	r.Equal(core.Header{"a"}, rs.Header())

	_, ok := rs.Next()
	r.False(ok)
}

func TestClient_Fetch_CustomTypeProcessor(t *testing.T) {
	r := require.New(t)
	client, mock := setupTestClient(t,
		WithCustomTypeProcessor("DECIMAL", func(v any) any {
			s, ok := v.(string)
			if !ok {
				return v
			}
			return "dec:" + s
		}),
		// second registration for the same type is ignored
		WithCustomTypeProcessor("decimal", func(any) any { return nil }),
	)

	rows := mock.NewRowsWithColumnDefinition(mock.NewColumn("price").OfType("DECIMAL(10,2)", "")).
		AddRow("9.99")
	mock.ExpectPrepare("select price from p").ExpectQuery().WillReturnRows(rows)

	rs, err := client.Fetch(context.Background(), "select price from p")
	r.NoError(err)

	row, ok := rs.Next()
	r.True(ok)
	r.Equal(core.Row{"price": "dec:9.99"}, row)
}

func TestClient_Fetch_Errors(t *testing.T) {
	engineErr := errors.New("engine failure")

	tests := []struct {
		name   string
		setup  func(mock sqlmock.Sqlmock)
		want   error
		engine bool
	}{
		{
			name: "prepare fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare("q").WillReturnError(engineErr)
			},
			want:   core.ErrPrepare,
			engine: true,
		},
		{
			name: "query fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare("q").ExpectQuery().WillReturnError(engineErr)
			},
			want:   core.ErrRowRead,
			engine: true,
		},
		{
			name: "row read fails",
			setup: func(mock sqlmock.Sqlmock) {
				rows := mock.NewRowsWithColumnDefinition(mock.NewColumn("a").OfType("INTEGER", int64(0))).
					AddRow(int64(1)).
					AddRow(int64(2)).
					RowError(1, engineErr)
				mock.ExpectPrepare("q").ExpectQuery().WillReturnRows(rows)
			},
			want:   core.ErrRowRead,
			engine: true,
		},
		{
			name: "value cannot be decoded",
			setup: func(mock sqlmock.Sqlmock) {
				rows := mock.NewRowsWithColumnDefinition(mock.NewColumn("a").OfType("STRUCT", struct{}{})).
					AddRow(struct{ X int }{X: 1})
				mock.ExpectPrepare("q").ExpectQuery().WillReturnRows(rows)
			},
			want: core.ErrValueDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := setupTestClient(t)
			tt.setup(mock)

			got, err := client.Fetch(context.Background(), "q")
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.want)
			if tt.engine {
				assert.ErrorIs(t, err, engineErr)
			}

			var fetchErr *core.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, "q", fetchErr.Query)
		})
	}
}

func TestClient_Exec(t *testing.T) {
	r := require.New(t)
	client, mock := setupTestClient(t)

	mock.ExpectExec("delete from t").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("drop table nope").WillReturnError(sql.ErrConnDone)

	n, err := client.Exec(context.Background(), "delete from t")
	r.NoError(err)
	r.Equal(int64(4), n)

	_, err = client.Exec(context.Background(), "drop table nope")
	r.ErrorIs(err, sql.ErrConnDone)

	r.NoError(mock.ExpectationsWereMet())
}
