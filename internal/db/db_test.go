package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/maildeck/mailsift/internal/config"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(config.DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"})
	if !strings.HasPrefix(dsn, "postgres://") {
		t.Fatalf("dsn must start with postgres://, got %q", dsn)
	}
	if !strings.Contains(dsn, "localhost:5432") || !strings.Contains(dsn, "/n") || !strings.Contains(dsn, "sslmode=disable") {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
}

func TestNew_InvalidConnection_FailsGracefully(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "127.0.0.1", Port: 65432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatalf("expected error when connecting to invalid db")
	}
}

type stubRow struct {
	scanned bool
}

func (r *stubRow) Scan(dest ...interface{}) error {
	r.scanned = true
	return nil
}

func TestTimeoutRow_CancelsAfterScan(t *testing.T) {
	row := &stubRow{}
	cancelled := false
	tr := &timeoutRow{row: row, cancel: func() { cancelled = true }}

	if cancelled {
		t.Fatalf("deadline must survive until the row is scanned")
	}
	if err := tr.Scan(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !row.scanned {
		t.Fatalf("scan not delegated")
	}
	if !cancelled {
		t.Fatalf("deadline not released after scan")
	}
}

type stubRows struct {
	pgx.Rows
	closed bool
}

func (r *stubRows) Close() { r.closed = true }

func TestTimeoutRows_CancelsOnClose(t *testing.T) {
	rows := &stubRows{}
	cancelled := false
	tr := &timeoutRows{Rows: rows, cancel: func() { cancelled = true }}

	tr.Close()
	if !rows.closed {
		t.Fatalf("close not delegated")
	}
	if !cancelled {
		t.Fatalf("deadline not released on close")
	}
}

func TestWithTimeout_ZeroDisablesDeadline(t *testing.T) {
	p := &TimeoutPool{QueryTimeout: 0}
	ctx, cancel := p.withTimeout(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Fatalf("zero timeout must not set a deadline")
	}

	p.QueryTimeout = time.Second
	ctx, cancel = p.withTimeout(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatalf("positive timeout must set a deadline")
	}
}
