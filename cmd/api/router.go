package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetops/fleet-asset/internal/config"
	"github.com/fleetops/fleet-asset/internal/handlers"
	"github.com/fleetops/fleet-asset/internal/middleware"
	"github.com/fleetops/fleet-asset/internal/repo"
)

// newRouter builds the full API router: repos, handlers, middleware chain,
// and the command endpoints under /v1/assets.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	historyRepo := &repo.HistoryRepo{DB: db}
	assetRepo := &repo.AssetRepo{DB: db, History: historyRepo}
	commentRepo := &repo.CommentRepo{DB: db}
	issueRepo := &repo.IssueRepo{DB: db}
	summaryRepo := &repo.SummaryRepo{DB: db, Assets: assetRepo}

	assetH := &handlers.AssetHandler{Assets: assetRepo, Summary: summaryRepo}
	commentH := &handlers.CommentHandler{Comments: commentRepo}
	issueH := &handlers.IssueHandler{Issues: issueRepo}
	historyH := &handlers.HistoryHandler{History: historyRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Operational endpoints, unauthenticated.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	limiter := middleware.MutationRateLimiter()

	r.Route("/v1/assets", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.APIToken, cfg.JWTSecret))
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Use(limiter.Middleware)

		r.Post("/create", assetH.Create)
		r.Post("/update", assetH.Update)
		r.Post("/delete", assetH.Delete)
		r.Post("/fetch-all", assetH.FetchAll)
		r.Post("/fetch-by-id", assetH.FetchByID)

		r.Post("/fetch-comments", commentH.FetchComments)
		r.Post("/add-comment", commentH.AddComment)
		r.Post("/delete-comment", commentH.DeleteComment)

		r.Post("/fetch-issues", issueH.FetchIssues)
		r.Post("/add-issue", issueH.AddIssue)
		r.Post("/complete-issue", issueH.CompleteIssue)
		r.Post("/delete-issue", issueH.DeleteIssue)

		r.Post("/add-history", historyH.AddHistory)
		r.Post("/fetch-history", historyH.FetchHistory)
	})

	return r
}
