package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fleetops/fleet-asset/internal/fleet"
	"github.com/fleetops/fleet-asset/internal/metrics"
	"github.com/fleetops/fleet-asset/internal/models"
)

const historyColumns = "id, asset_id, batch_id, field_name, old_value, new_value, COALESCE(changed_by,''), changed_at"

// HistoryRepo appends and reads the immutable audit trail. There is no
// update or single-row delete; rows are only removed asset-scoped during
// asset deletion.
type HistoryRepo struct {
	DB *sql.DB
}

// NewHistoryRepo returns a new HistoryRepo.
func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{DB: db}
}

// WriteBatch inserts one history row per change in a single insert, all
// sharing a fresh batch id. A nil or empty change set is a no-op. On failure
// the caller's already-applied asset write stays put; the returned
// PartialAuditError carries a field:newValue hint when exactly one row was
// attempted.
func (r *HistoryRepo) WriteBatch(ctx context.Context, assetID int, changes []fleet.Change, changedBy string) error {
	if len(changes) == 0 {
		return nil
	}

	batchID := uuid.NewString()
	var sb strings.Builder
	sb.WriteString("INSERT INTO asset_history (asset_id, batch_id, field_name, old_value, new_value, changed_by) VALUES ")
	args := make([]any, 0, len(changes)*6)
	for i, c := range changes {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, assetID, batchID, c.Field, c.Old, c.New, changedBy)
	}

	if _, err := r.DB.ExecContext(ctx, sb.String(), args...); err != nil {
		metrics.IncAuditWriteFailures()
		hint := ""
		if len(changes) == 1 {
			newVal := "null"
			if changes[0].New != nil {
				newVal = *changes[0].New
			}
			hint = changes[0].Field + ":" + newVal
		}
		return &PartialAuditError{FieldHint: hint, Err: err}
	}
	metrics.AddAuditRowsWritten(len(changes))
	return nil
}

// Insert records one manual, out-of-band audit entry. It gets its own batch id.
func (r *HistoryRepo) Insert(ctx context.Context, assetID int, fieldName string, oldValue, newValue *string, changedBy string) (models.HistoryEntry, error) {
	var e models.HistoryEntry
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO asset_history (asset_id, batch_id, field_name, old_value, new_value, changed_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+historyColumns,
		assetID, uuid.NewString(), fieldName, oldValue, newValue, changedBy,
	).Scan(&e.ID, &e.AssetID, &e.BatchID, &e.FieldName, &e.OldValue, &e.NewValue, &e.ChangedBy, &e.ChangedAt)
	return e, err
}

// ListByAsset returns an asset's trail, newest first.
func (r *HistoryRepo) ListByAsset(ctx context.Context, assetID int) ([]models.HistoryEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+historyColumns+` FROM asset_history WHERE asset_id = $1 ORDER BY changed_at DESC, id DESC`,
		assetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.AssetID, &e.BatchID, &e.FieldName, &e.OldValue, &e.NewValue, &e.ChangedBy, &e.ChangedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteByAsset removes all history rows for one asset. Only asset deletion
// calls this, and it must run before the asset row goes away.
func (r *HistoryRepo) DeleteByAsset(ctx context.Context, assetID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM asset_history WHERE asset_id = $1`, assetID)
	return err
}
