package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type execCall struct {
	sql  string
	args []any
}

// execResult answers one Exec whose SQL contains match.
type execResult struct {
	match string
	rows  int64
	err   error
}

// fakeTx records Exec calls; anything else on pgx.Tx panics through the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	results    []execResult
	calls      []execCall
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.calls = append(t.calls, execCall{sql: sql, args: args})
	for _, r := range t.results {
		if strings.Contains(sql, r.match) {
			if r.err != nil {
				return pgconn.CommandTag{}, r.err
			}
			return pgconn.NewCommandTag("UPDATE " + strconv.FormatInt(r.rows, 10)), nil
		}
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) sqlContaining(fragment string) int {
	n := 0
	for _, c := range t.calls {
		if strings.Contains(c.sql, fragment) {
			n++
		}
	}
	return n
}

// fakeDB hands out a single fakeTx; direct queries are not expected in these tests.
type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (d *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{errors.New("unexpected query")}
}

func (d *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected exec outside transaction")
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func (d *fakeDB) Ping(context.Context) error { return nil }

func (d *fakeDB) Close() {}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
