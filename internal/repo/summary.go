package repo

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/fleetops/fleet-asset/internal/models"
)

// SummaryRepo builds the aggregated list view: every asset joined in memory
// with its latest audit timestamp, open-issue count, and comment count. Four
// flat queries instead of per-asset round trips keeps the cost linear in the
// row counts. The queries are not one consistent snapshot; minor skew
// between the asset list and the counts is tolerated.
type SummaryRepo struct {
	DB     *sql.DB
	Assets *AssetRepo
}

// NewSummaryRepo returns a new SummaryRepo reading assets through assets.
func NewSummaryRepo(db *sql.DB, assets *AssetRepo) *SummaryRepo {
	return &SummaryRepo{DB: db, Assets: assets}
}

// ListWithAggregates returns one summary per asset. A failure loading the
// asset list fails the call; failures on the secondary reads (history
// timestamps, issue and comment counts) degrade that column to empty/zero
// rather than failing the whole view.
func (r *SummaryRepo) ListWithAggregates(ctx context.Context) ([]models.AssetSummary, error) {
	assets, err := r.Assets.List(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := r.latestHistoryByAsset(ctx)
	if err != nil {
		slog.Warn("summary: history aggregate degraded", "err", err)
		latest = map[int]time.Time{}
	}
	openIssues, err := r.openIssueCounts(ctx)
	if err != nil {
		slog.Warn("summary: open issue counts degraded", "err", err)
		openIssues = map[int]int{}
	}
	comments, err := r.commentCounts(ctx)
	if err != nil {
		slog.Warn("summary: comment counts degraded", "err", err)
		comments = map[int]int{}
	}

	summaries := make([]models.AssetSummary, 0, len(assets))
	for _, a := range assets {
		s := models.AssetSummary{
			Asset:           a,
			OpenIssuesCount: openIssues[a.ID],
			CommentsCount:   comments[a.ID],
		}
		if ts, ok := latest[a.ID]; ok {
			t := ts
			s.LatestHistoryDate = &t
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// GetWithLatestHistory returns one asset with its aggregates, or (nil, nil)
// when the id does not resolve.
func (r *SummaryRepo) GetWithLatestHistory(ctx context.Context, id int) (*models.AssetSummary, error) {
	a, err := r.Assets.GetByID(ctx, id)
	if errors.Is(err, ErrAssetNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s := models.AssetSummary{Asset: a}
	var ts sql.NullTime
	if err := r.DB.QueryRowContext(ctx,
		`SELECT MAX(changed_at) FROM asset_history WHERE asset_id = $1`, id).Scan(&ts); err != nil {
		slog.Warn("summary: latest history degraded", "asset_id", id, "err", err)
	} else if ts.Valid {
		s.LatestHistoryDate = &ts.Time
	}
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM asset_issues WHERE asset_id = $1 AND time_completed IS NULL`, id).Scan(&s.OpenIssuesCount); err != nil {
		slog.Warn("summary: open issue count degraded", "asset_id", id, "err", err)
	}
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM asset_comments WHERE asset_id = $1`, id).Scan(&s.CommentsCount); err != nil {
		slog.Warn("summary: comment count degraded", "asset_id", id, "err", err)
	}
	return &s, nil
}

// StaleAssets returns assets with no audit activity since the cutoff,
// including assets that have never produced a history row. The report
// scheduler uses this.
func (r *SummaryRepo) StaleAssets(ctx context.Context, since time.Time) ([]models.Asset, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets a
		 WHERE NOT EXISTS (
			SELECT 1 FROM asset_history h
			WHERE h.asset_id = a.id AND h.changed_at > $1
		 )
		 ORDER BY a.id`,
		since,
	)
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

// latestHistoryByAsset scans the trail newest-first and keeps the first
// timestamp seen per asset.
func (r *SummaryRepo) latestHistoryByAsset(ctx context.Context) (map[int]time.Time, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT asset_id, changed_at FROM asset_history ORDER BY changed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := make(map[int]time.Time)
	for rows.Next() {
		var assetID int
		var ts time.Time
		if err := rows.Scan(&assetID, &ts); err != nil {
			return nil, err
		}
		if _, ok := latest[assetID]; !ok {
			latest[assetID] = ts
		}
	}
	return latest, rows.Err()
}

func (r *SummaryRepo) openIssueCounts(ctx context.Context) (map[int]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT asset_id FROM asset_issues WHERE time_completed IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return countByAsset(rows)
}

func (r *SummaryRepo) commentCounts(ctx context.Context) (map[int]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT asset_id FROM asset_comments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return countByAsset(rows)
}

func countByAsset(rows *sql.Rows) (map[int]int, error) {
	counts := make(map[int]int)
	for rows.Next() {
		var assetID int
		if err := rows.Scan(&assetID); err != nil {
			return nil, err
		}
		counts[assetID]++
	}
	return counts, rows.Err()
}
