package scheduler

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/crucial707/asset-inventory/internal/repo"
)

func TestRun_RefreshesOnStart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM assets`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("available", 3).
			AddRow("maintenance", 1))
	mock.ExpectQuery(`LEFT JOIN assets a ON c.id = a.category_id`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).AddRow("Computer", 4))

	stop, err := Run(repo.NewAssetRepo(db), "@every 1h")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer stop()

	// The initial refresh is synchronous, so the queries ran already.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRun_BadCronSpec(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	if _, err := Run(repo.NewAssetRepo(db), "not a cron spec"); err == nil {
		t.Fatal("expected an error for an invalid cron spec")
	}
}
