package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/fleetops/fleet-asset/internal/metrics"
	"github.com/fleetops/fleet-asset/internal/models"
	"github.com/fleetops/fleet-asset/internal/repo"
	"github.com/robfig/cron/v3"
)

// staleCutoff is how far back the digest looks for audit activity before
// calling an asset stale.
const staleCutoff = 30 * 24 * time.Hour

// Run starts the background fleet digest scheduler. At each cronExpr tick it
// logs the open high-severity issues and the assets with no recent audit
// activity, and refreshes the open-issues gauge. Blocks; run in a goroutine.
func Run(issueRepo *repo.IssueRepo, summaryRepo *repo.SummaryRepo, cronExpr string) error {
	c := cron.New()

	digest := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		open, err := issueRepo.CountOpen(ctx)
		if err != nil {
			slog.Error("digest: count open issues", "error", err)
		} else {
			metrics.SetOpenIssues(open)
		}

		issues, err := issueRepo.ListOpenBySeverity(ctx, models.SeverityHigh)
		if err != nil {
			slog.Error("digest: list open high-severity issues", "error", err)
			return
		}
		slog.Info("fleet digest", "open_issues", open, "high_severity", len(issues))
		for _, issue := range issues {
			slog.Warn("open high-severity issue",
				"issue_id", issue.ID,
				"asset_id", issue.AssetID,
				"description", issue.Description,
				"opened_at", issue.TimeCreated.Format(time.RFC3339))
		}

		stale, err := summaryRepo.StaleAssets(ctx, time.Now().Add(-staleCutoff))
		if err != nil {
			slog.Error("digest: list stale assets", "error", err)
			return
		}
		for _, a := range stale {
			slog.Info("asset with no recent audit activity",
				"asset_id", a.ID,
				"code", a.Code,
				"status", a.Status)
		}
	}

	if _, err := c.AddFunc(cronExpr, digest); err != nil {
		return err
	}

	// Refresh the gauge once at startup so it is not zero until the first tick.
	digest()

	c.Start()
	select {}
}
