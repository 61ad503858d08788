package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// TimeoutPool wraps the pgx pool so every statement carries the configured
// query timeout without each caller managing its own context deadline.
// A zero QueryTimeout disables the per-statement deadline.
type TimeoutPool struct {
	*pgxpool.Pool
	QueryTimeout time.Duration
}

func (p *TimeoutPool) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.QueryTimeout)
}

func (p *TimeoutPool) Ping(ctx context.Context) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.Pool.Ping(ctx)
}

func (p *TimeoutPool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.Pool.Exec(ctx, sql, args...)
}

// Query and QueryRow release their deadline only once the result is
// consumed; cancelling on return would kill the row stream before the
// caller scans it.

func (p *TimeoutPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	ctx, cancel := p.withTimeout(ctx)
	rows, err := p.Pool.Query(ctx, sql, args...)
	if err != nil {
		cancel()
		return nil, err
	}
	return &timeoutRows{Rows: rows, cancel: cancel}, nil
}

func (p *TimeoutPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	ctx, cancel := p.withTimeout(ctx)
	return &timeoutRow{row: p.Pool.QueryRow(ctx, sql, args...), cancel: cancel}
}

type timeoutRows struct {
	pgx.Rows
	cancel context.CancelFunc
}

func (r *timeoutRows) Close() {
	r.Rows.Close()
	r.cancel()
}

type timeoutRow struct {
	row    pgx.Row
	cancel context.CancelFunc
}

func (r *timeoutRow) Scan(dest ...interface{}) error {
	defer r.cancel()
	return r.row.Scan(dest...)
}
