package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fleetops/fleet-asset/internal/repo"
)

func newIssueHandler(t *testing.T) (*IssueHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return &IssueHandler{Issues: repo.NewIssueRepo(db)}, mock, func() { db.Close() }
}

func TestIssueHandler_AddIssue_CoercesSeverity(t *testing.T) {
	h, mock, done := newIssueHandler(t)
	defer done()

	// Unknown severity must arrive at the store already coerced to Medium.
	mock.ExpectQuery(`INSERT INTO asset_issues`).
		WithArgs(3, "loose mirror", "Medium").
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "description", "severity", "time_created", "time_completed"}).
			AddRow(1, 3, "loose mirror", "Medium", time.Now(), nil))

	rr := postJSON(t, h.AddIssue, map[string]any{
		"assetId": 3, "description": "loose mirror", "severity": "Catastrophic",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("AddIssue status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	var out struct {
		Severity string `json:"severity"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Severity != "Medium" {
		t.Errorf("unexpected severity: %q", out.Severity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestIssueHandler_AddIssue_EmptyDescription(t *testing.T) {
	h, mock, done := newIssueHandler(t)
	defer done()

	rr := postJSON(t, h.AddIssue, map[string]any{"assetId": 3, "description": "  "})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("AddIssue status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestIssueHandler_CompleteIssue_NotFound(t *testing.T) {
	h, mock, done := newIssueHandler(t)
	defer done()

	mock.ExpectQuery(`UPDATE asset_issues SET time_completed = NOW\(\)`).
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	rr := postJSON(t, h.CompleteIssue, map[string]any{"issueId": 404})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("CompleteIssue status: got %d, want 404", rr.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Error != "issue not found or already deleted" {
		t.Errorf("unexpected error message: %q", out.Error)
	}
}

func TestIssueHandler_DeleteIssue_NotFound(t *testing.T) {
	h, mock, done := newIssueHandler(t)
	defer done()

	mock.ExpectExec(`DELETE FROM asset_issues WHERE id = \$1`).
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rr := postJSON(t, h.DeleteIssue, map[string]any{"issueId": 404})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("DeleteIssue status: got %d, want 404", rr.Code)
	}
}
