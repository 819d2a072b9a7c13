package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/sprintdesk/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects Err into a transaction, either
// on the Nth ExecContext call (FailOn, counted from 1) or on the first
// ExecContext whose statement contains FailWhen. Reads pass through.
type FailOnNthExecUoW struct {
	DB       *sql.DB
	FailOn   int32
	FailWhen string
	Err      error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingExec{DBTX: tx, failOn: u.FailOn, failWhen: u.FailWhen, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	count    atomic.Int32
	failOn   int32
	failWhen string
	err      error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn || (f.failWhen != "" && strings.Contains(query, f.failWhen)) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
