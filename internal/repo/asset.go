package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fleetops/fleet-asset/internal/fleet"
	"github.com/fleetops/fleet-asset/internal/metrics"
	"github.com/fleetops/fleet-asset/internal/models"
)

const assetColumns = `id, code, COALESCE(plant,''), assigned_operator, status, service_date,
	cab_rating, exterior_rating, COALESCE(make,''), COALESCE(model,''), year, COALESCE(vin,''),
	COALESCE(notes,''), created_at, updated_at, COALESCE(updated_by,'')`

// AssetRepo owns the primary asset table. Updates run the full pipeline:
// load current, resolve the status/operator pair, merge the candidate, diff
// the tracked fields, persist, then append the audit batch. No transaction
// spans the persist and the audit write; the window between them is an
// accepted partial-failure case surfaced as PartialAuditError.
type AssetRepo struct {
	DB      *sql.DB
	History *HistoryRepo
}

// NewAssetRepo returns a new AssetRepo writing audit rows through history.
func NewAssetRepo(db *sql.DB, history *HistoryRepo) *AssetRepo {
	return &AssetRepo{DB: db, History: history}
}

func scanAsset(row interface{ Scan(...any) error }) (models.Asset, error) {
	var a models.Asset
	err := row.Scan(&a.ID, &a.Code, &a.Plant, &a.AssignedOperator, &a.Status, &a.ServiceDate,
		&a.CabRating, &a.ExteriorRating, &a.Make, &a.Model, &a.Year, &a.VIN,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt, &a.UpdatedBy)
	return a, err
}

// Create inserts a new asset. Status defaults to Active when omitted, and no
// history is written: there is no current record to diff against.
func (r *AssetRepo) Create(ctx context.Context, a models.Asset, userID string) (models.Asset, error) {
	if a.Status == "" {
		a.Status = models.StatusActive
	}
	return scanAsset(r.DB.QueryRowContext(ctx,
		`INSERT INTO assets (code, plant, assigned_operator, status, service_date, cab_rating,
			exterior_rating, make, model, year, vin, notes, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+assetColumns,
		a.Code, a.Plant, a.AssignedOperator, a.Status, a.ServiceDate, a.CabRating,
		a.ExteriorRating, a.Make, a.Model, a.Year, a.VIN, a.Notes, userID,
	))
}

// GetByID returns one asset, or ErrAssetNotFound.
func (r *AssetRepo) GetByID(ctx context.Context, id int) (models.Asset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, ErrAssetNotFound
	}
	return a, err
}

// List returns all assets ordered by id.
func (r *AssetRepo) List(ctx context.Context) ([]models.Asset, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Update applies a partial patch to one asset. The persisted status/operator
// pair always comes out of the resolver, never straight from the request.
// Returns ErrAssetNotFound when the id does not resolve, and the persisted
// record together with a PartialAuditError when the asset write landed but
// the audit batch did not.
func (r *AssetRepo) Update(ctx context.Context, id int, patch models.AssetPatch, userID string) (models.Asset, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Asset{}, err
	}

	next, err := fleet.Merge(current, patch)
	if err != nil {
		return models.Asset{}, err
	}
	changes := fleet.Diff(current, next)

	updated, err := scanAsset(r.DB.QueryRowContext(ctx,
		`UPDATE assets
		 SET code = $1, plant = $2, assigned_operator = $3, status = $4, service_date = $5,
		     cab_rating = $6, exterior_rating = $7, make = $8, model = $9, year = $10,
		     vin = $11, notes = $12, updated_at = NOW(), updated_by = $13
		 WHERE id = $14
		 RETURNING `+assetColumns,
		next.Code, next.Plant, next.AssignedOperator, next.Status, next.ServiceDate,
		next.CabRating, next.ExteriorRating, next.Make, next.Model, next.Year,
		next.VIN, next.Notes, userID, id,
	))
	if err != nil {
		metrics.IncAssetUpdates("error")
		return models.Asset{}, fmt.Errorf("update asset %d: %w", id, err)
	}

	if err := r.History.WriteBatch(ctx, id, changes, userID); err != nil {
		metrics.IncAssetUpdates("partial_audit_failure")
		return updated, err
	}
	metrics.IncAssetUpdates("ok")
	return updated, nil
}

// Delete removes the asset's history rows first, then the asset row. The
// ordering keeps the trail from ever referencing a missing asset mid-flight.
// A failure at either step leaves state as-is; there is no compensation.
func (r *AssetRepo) Delete(ctx context.Context, id int) error {
	if err := r.History.DeleteByAsset(ctx, id); err != nil {
		return fmt.Errorf("delete history for asset %d: %w", id, err)
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAssetNotFound
	}
	return nil
}
