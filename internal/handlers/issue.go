package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fleetops/fleet-asset/internal/models"
	"github.com/fleetops/fleet-asset/internal/repo"
)

// IssueHandler serves the issue command endpoints.
type IssueHandler struct {
	Issues *repo.IssueRepo
}

// FetchIssues handles POST /v1/assets/fetch-issues.
func (h *IssueHandler) FetchIssues(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AssetID int `json:"assetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.AssetID <= 0 {
		JSONValidationError(w, "validation failed", map[string]string{"assetId": "required"}, http.StatusBadRequest)
		return
	}

	issues, err := h.Issues.ListByAsset(r.Context(), input.AssetID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if issues == nil {
		issues = []models.Issue{}
	}
	writeJSON(w, http.StatusOK, issues)
}

// AddIssue handles POST /v1/assets/add-issue. Any severity outside the known
// set is coerced to Medium rather than rejected.
func (h *IssueHandler) AddIssue(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AssetID     int    `json:"assetId"`
		Description string `json:"description"`
		Severity    string `json:"severity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.AssetID <= 0 {
		fields["assetId"] = "required"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	issue, err := h.Issues.Add(r.Context(), input.AssetID, input.Description, models.ParseSeverity(input.Severity))
	if err != nil {
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, issue)
}

// CompleteIssue handles POST /v1/assets/complete-issue. Completion is
// one-way; a repeat call overwrites the completion stamp.
func (h *IssueHandler) CompleteIssue(w http.ResponseWriter, r *http.Request) {
	var input struct {
		IssueID int `json:"issueId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.IssueID <= 0 {
		JSONValidationError(w, "validation failed", map[string]string{"issueId": "required"}, http.StatusBadRequest)
		return
	}

	issue, err := h.Issues.Complete(r.Context(), input.IssueID)
	if err != nil {
		if errors.Is(err, repo.ErrIssueNotFound) {
			JSONError(w, repo.ErrIssueNotFound.Error(), http.StatusNotFound)
			return
		}
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

// DeleteIssue handles POST /v1/assets/delete-issue.
func (h *IssueHandler) DeleteIssue(w http.ResponseWriter, r *http.Request) {
	var input struct {
		IssueID int `json:"issueId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.IssueID <= 0 {
		JSONValidationError(w, "validation failed", map[string]string{"issueId": "required"}, http.StatusBadRequest)
		return
	}

	if err := h.Issues.Delete(r.Context(), input.IssueID); err != nil {
		if errors.Is(err, repo.ErrIssueNotFound) {
			JSONError(w, repo.ErrIssueNotFound.Error(), http.StatusNotFound)
			return
		}
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
