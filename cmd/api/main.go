package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/fleetops/fleet-asset/internal/config"
	"github.com/fleetops/fleet-asset/internal/db"
	"github.com/fleetops/fleet-asset/internal/repo"
	"github.com/fleetops/fleet-asset/internal/scheduler"
)

func main() {
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		slog.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Run(cfg.DatabaseURL()); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready", "host", cfg.DBHost, "name", cfg.DBName)

	if cfg.ReportCron != "" {
		issueRepo := &repo.IssueRepo{DB: database}
		historyRepo := &repo.HistoryRepo{DB: database}
		assetRepo := &repo.AssetRepo{DB: database, History: historyRepo}
		summaryRepo := &repo.SummaryRepo{DB: database, Assets: assetRepo}
		go func() {
			if err := scheduler.Run(issueRepo, summaryRepo, cfg.ReportCron); err != nil {
				slog.Error("scheduler failed to start", "error", err, "cron", cfg.ReportCron)
			}
		}()
	}

	router := newRouter(database, cfg)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting API server (https)", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, router)
	} else {
		slog.Info("starting API server", "addr", addr)
		err = http.ListenAndServe(addr, router)
	}
	if err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
