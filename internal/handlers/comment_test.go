package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fleetops/fleet-asset/internal/repo"
)

func newCommentHandler(t *testing.T) (*CommentHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return &CommentHandler{Comments: repo.NewCommentRepo(db)}, mock, func() { db.Close() }
}

func TestCommentHandler_AddComment(t *testing.T) {
	h, mock, done := newCommentHandler(t)
	defer done()

	mock.ExpectQuery(`INSERT INTO asset_comments`).
		WithArgs(2, "greased fittings", "user1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "body", "author", "created_at"}).
			AddRow(1, 2, "greased fittings", "user1", time.Now()))

	rr := postJSON(t, h.AddComment, map[string]any{
		"assetId": 2, "text": "greased fittings", "author": "user1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("AddComment status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_AddComment_WhitespaceText(t *testing.T) {
	h, mock, done := newCommentHandler(t)
	defer done()

	rr := postJSON(t, h.AddComment, map[string]any{
		"assetId": 2, "text": "   ", "author": "user1",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("AddComment status: got %d, want 400", rr.Code)
	}
	// No row may have been written.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_AddComment_MissingAuthor(t *testing.T) {
	h, _, done := newCommentHandler(t)
	defer done()

	rr := postJSON(t, h.AddComment, map[string]any{"assetId": 2, "text": "ok"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("AddComment status: got %d, want 400", rr.Code)
	}
}

func TestCommentHandler_DeleteComment_NotFound(t *testing.T) {
	h, mock, done := newCommentHandler(t)
	defer done()

	mock.ExpectExec(`DELETE FROM asset_comments WHERE id = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rr := postJSON(t, h.DeleteComment, map[string]any{"commentId": 9})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("DeleteComment status: got %d, want 404", rr.Code)
	}
}
