package repo

import (
	"context"
	"database/sql"

	"github.com/fleetops/fleet-asset/internal/models"
)

// CommentRepo persists append-only asset comments.
type CommentRepo struct {
	DB *sql.DB
}

// NewCommentRepo returns a new CommentRepo.
func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{DB: db}
}

// ListByAsset returns an asset's comments, newest first.
func (r *CommentRepo) ListByAsset(ctx context.Context, assetID int) ([]models.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, asset_id, body, author, created_at FROM asset_comments
		 WHERE asset_id = $1 ORDER BY created_at DESC, id DESC`,
		assetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.AssetID, &c.Body, &c.Author, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Add appends a comment with a server-side timestamp.
func (r *CommentRepo) Add(ctx context.Context, assetID int, body, author string) (models.Comment, error) {
	var c models.Comment
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO asset_comments (asset_id, body, author)
		 VALUES ($1, $2, $3)
		 RETURNING id, asset_id, body, author, created_at`,
		assetID, body, author,
	).Scan(&c.ID, &c.AssetID, &c.Body, &c.Author, &c.CreatedAt)
	return c, err
}

// Delete removes one comment by id, reporting ErrCommentNotFound when the
// row is already gone.
func (r *CommentRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM asset_comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCommentNotFound
	}
	return nil
}
