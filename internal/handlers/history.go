package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fleetops/fleet-asset/internal/fleet"
	"github.com/fleetops/fleet-asset/internal/models"
	"github.com/fleetops/fleet-asset/internal/repo"
)

// HistoryHandler serves the audit trail endpoints. History rows are
// immutable: there is no update or delete operation here.
type HistoryHandler struct {
	History *repo.HistoryRepo
}

// AddHistory handles POST /v1/assets/add-history: a manual, out-of-band
// audit entry. The field name must be on the tracked allow-list.
func (h *HistoryHandler) AddHistory(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AssetID   int     `json:"assetId"`
		FieldName string  `json:"fieldName"`
		OldValue  *string `json:"oldValue"`
		NewValue  *string `json:"newValue"`
		ChangedBy string  `json:"changedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.AssetID <= 0 {
		fields["assetId"] = "required"
	}
	if input.FieldName == "" {
		fields["fieldName"] = "required"
	} else if !fleet.IsTracked(input.FieldName) {
		fields["fieldName"] = "not an audit-tracked field"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	entry, err := h.History.Insert(r.Context(), input.AssetID, input.FieldName, input.OldValue, input.NewValue, input.ChangedBy)
	if err != nil {
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// FetchHistory handles POST /v1/assets/fetch-history: one asset's trail,
// newest first.
func (h *HistoryHandler) FetchHistory(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.History.ListByAsset(r.Context(), input.AssetID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
