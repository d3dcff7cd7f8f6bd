package repo

import (
	"context"
	"database/sql"

	"github.com/fleetops/fleet-asset/internal/models"
)

const issueColumns = "id, asset_id, description, severity, time_created, time_completed"

// IssueRepo persists asset issues. An issue is open while time_completed is
// NULL; completion is one-way (there is no reopen), though a repeat
// completion simply overwrites the stamp.
type IssueRepo struct {
	DB *sql.DB
}

// NewIssueRepo returns a new IssueRepo.
func NewIssueRepo(db *sql.DB) *IssueRepo {
	return &IssueRepo{DB: db}
}

func scanIssue(row interface{ Scan(...any) error }) (models.Issue, error) {
	var i models.Issue
	err := row.Scan(&i.ID, &i.AssetID, &i.Description, &i.Severity, &i.TimeCreated, &i.TimeCompleted)
	return i, err
}

// ListByAsset returns an asset's issues, open first, then newest first.
func (r *IssueRepo) ListByAsset(ctx context.Context, assetID int) ([]models.Issue, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM asset_issues
		 WHERE asset_id = $1
		 ORDER BY time_completed IS NOT NULL, time_created DESC, id DESC`,
		assetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}

// ListOpenBySeverity returns all open issues of the given severity across
// the fleet, oldest first. The report scheduler uses this.
func (r *IssueRepo) ListOpenBySeverity(ctx context.Context, severity string) ([]models.Issue, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM asset_issues
		 WHERE time_completed IS NULL AND severity = $1
		 ORDER BY time_created`,
		severity,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}

// CountOpen returns the number of open issues across all assets.
func (r *IssueRepo) CountOpen(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM asset_issues WHERE time_completed IS NULL`).Scan(&n)
	return n, err
}

// Add appends a new open issue. Severity is assumed already coerced into the
// known set by the caller.
func (r *IssueRepo) Add(ctx context.Context, assetID int, description, severity string) (models.Issue, error) {
	return scanIssue(r.DB.QueryRowContext(ctx,
		`INSERT INTO asset_issues (asset_id, description, severity)
		 VALUES ($1, $2, $3)
		 RETURNING `+issueColumns,
		assetID, description, severity,
	))
}

// Complete stamps time_completed with the server clock. Repeated completion
// overwrites the stamp rather than erroring.
func (r *IssueRepo) Complete(ctx context.Context, id int) (models.Issue, error) {
	i, err := scanIssue(r.DB.QueryRowContext(ctx,
		`UPDATE asset_issues SET time_completed = NOW() WHERE id = $1 RETURNING `+issueColumns,
		id,
	))
	if err == sql.ErrNoRows {
		return models.Issue{}, ErrIssueNotFound
	}
	return i, err
}

// Delete removes one issue by id, reporting ErrIssueNotFound when zero rows
// were affected.
func (r *IssueRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM asset_issues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrIssueNotFound
	}
	return nil
}
