package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestIssueRepo_Add(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO asset_issues`).
		WithArgs(3, "hydraulic leak", "High").
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "description", "severity", "time_created", "time_completed"}).
			AddRow(8, 3, "hydraulic leak", "High", now, nil))

	repo := NewIssueRepo(db)
	issue, err := repo.Add(context.Background(), 3, "hydraulic leak", "High")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if issue.ID != 8 || !issue.Open() {
		t.Errorf("unexpected issue: %+v", issue)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestIssueRepo_Complete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE asset_issues SET time_completed = NOW\(\) WHERE id = \$1`).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "description", "severity", "time_created", "time_completed"}).
			AddRow(8, 3, "hydraulic leak", "High", now.Add(-time.Hour), now))

	repo := NewIssueRepo(db)
	issue, err := repo.Complete(context.Background(), 8)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if issue.Open() {
		t.Errorf("issue still open: %+v", issue)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestIssueRepo_Complete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE asset_issues SET time_completed = NOW\(\) WHERE id = \$1`).
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	repo := NewIssueRepo(db)
	_, err = repo.Complete(context.Background(), 404)
	if !errors.Is(err, ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound, got %v", err)
	}
}

func TestIssueRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM asset_issues WHERE id = \$1`).
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewIssueRepo(db)
	if err := repo.Delete(context.Background(), 404); !errors.Is(err, ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound, got %v", err)
	}
}

func TestIssueRepo_ListOpenBySeverity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM asset_issues\s+WHERE time_completed IS NULL AND severity = \$1`).
		WithArgs("High").
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "description", "severity", "time_created", "time_completed"}).
			AddRow(1, 2, "brakes", "High", now, nil))

	repo := NewIssueRepo(db)
	issues, err := repo.ListOpenBySeverity(context.Background(), "High")
	if err != nil {
		t.Fatalf("ListOpenBySeverity: %v", err)
	}
	if len(issues) != 1 || issues[0].Description != "brakes" {
		t.Errorf("unexpected issues: %+v", issues)
	}
}
