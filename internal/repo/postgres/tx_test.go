package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestWithTxRequiresPool(t *testing.T) {
	called := false
	err := WithTx(context.Background(), nil, func(context.Context, pgx.Tx) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected an error for a nil pool")
	}
	if called {
		t.Fatal("callback must not run without a transaction")
	}
}

func TestReportWritesRejectNilPool(t *testing.T) {
	repo := NewReportRepo(nil)

	if _, err := repo.Create(context.Background(), CreateReportParams{ReporterID: 1}); err == nil {
		t.Fatal("expected Create to fail without a pool")
	}
	if _, _, err := repo.Process(context.Background(), 1, "RESOLVED", 2, ""); err == nil {
		t.Fatal("expected Process to fail without a pool")
	}
}
