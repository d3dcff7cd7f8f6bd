package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fleetops/fleet-asset/internal/fleet"
	"github.com/fleetops/fleet-asset/internal/models"
	"github.com/fleetops/fleet-asset/internal/repo"
)

// AssetHandler serves the asset command endpoints. Each operation is a POST
// with a JSON body; the trailing path segment names the operation.
type AssetHandler struct {
	Assets  *repo.AssetRepo
	Summary *repo.SummaryRepo
}

// Create handles POST /v1/assets/create.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID           string  `json:"userId" validate:"required"`
		Code             string  `json:"code" validate:"required,max=64"`
		Plant            string  `json:"plant" validate:"max=128"`
		AssignedOperator *string `json:"assignedOperator"`
		Status           string  `json:"status"`
		ServiceDate      *string `json:"serviceDate"`
		CabRating        int     `json:"cabRating" validate:"min=0,max=5"`
		ExteriorRating   int     `json:"exteriorRating" validate:"min=0,max=5"`
		Make             string  `json:"make" validate:"max=128"`
		Model            string  `json:"model" validate:"max=128"`
		Year             int     `json:"year"`
		VIN              string  `json:"vin" validate:"max=64"`
		Notes            string  `json:"notes" validate:"max=2000"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.Status != "" && !models.ValidStatus(input.Status) {
		JSONValidationError(w, "validation failed", map[string]string{"status": "unknown status"}, http.StatusBadRequest)
		return
	}

	a := models.Asset{
		Code:             input.Code,
		Plant:            input.Plant,
		AssignedOperator: input.AssignedOperator,
		Status:           input.Status,
		CabRating:        input.CabRating,
		ExteriorRating:   input.ExteriorRating,
		Make:             input.Make,
		Model:            input.Model,
		Year:             input.Year,
		VIN:              input.VIN,
		Notes:            input.Notes,
	}
	if input.ServiceDate != nil {
		ts, err := fleet.ParseDate(*input.ServiceDate)
		if err != nil {
			JSONValidationError(w, "validation failed", map[string]string{"serviceDate": "invalid date"}, http.StatusBadRequest)
			return
		}
		d := ts.UTC()
		a.ServiceDate = &d
	}

	created, err := h.Assets.Create(r.Context(), a, input.UserID)
	if err != nil {
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles POST /v1/assets/update: partial patch, invariant-resolved,
// diffed, persisted, audit-logged.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID     int    `json:"id"`
		UserID string `json:"userId"`
		models.AssetPatch
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.ID <= 0 {
		fields["id"] = "required"
	}
	if input.UserID == "" {
		fields["userId"] = "required"
	}
	if input.Status.Set && !input.Status.Null && !models.ValidStatus(input.Status.Value) {
		fields["status"] = "unknown status"
	}
	if input.ServiceDate.Set && !input.ServiceDate.Null {
		if _, err := fleet.ParseDate(input.ServiceDate.Value); err != nil {
			fields["serviceDate"] = "invalid date"
		}
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	updated, err := h.Assets.Update(r.Context(), input.ID, input.AssetPatch, input.UserID)
	if err != nil {
		var pae *repo.PartialAuditError
		switch {
		case errors.Is(err, repo.ErrAssetNotFound):
			JSONError(w, repo.ErrAssetNotFound.Error(), http.StatusNotFound)
		case errors.As(err, &pae):
			// The asset write landed; report the audit failure with the
			// field hint so operators can reconstruct the missing row.
			out := map[string]any{"error": pae.Error()}
			if pae.FieldHint != "" {
				out["failedField"] = pae.FieldHint
			}
			writeJSON(w, http.StatusInternalServerError, out)
		default:
			JSONError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles POST /v1/assets/delete. History rows go first, then the
// asset row.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.ID <= 0 {
		JSONValidationError(w, "validation failed", map[string]string{"id": "required"}, http.StatusBadRequest)
		return
	}

	if err := h.Assets.Delete(r.Context(), input.ID); err != nil {
		if errors.Is(err, repo.ErrAssetNotFound) {
			JSONError(w, repo.ErrAssetNotFound.Error(), http.StatusNotFound)
			return
		}
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// FetchAll handles POST /v1/assets/fetch-all: the aggregated list view.
func (h *AssetHandler) FetchAll(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Summary.ListWithAggregates(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// FetchByID handles POST /v1/assets/fetch-by-id. A missing id resolves to a
// JSON null body, not a 404.
func (h *AssetHandler) FetchByID(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.ID <= 0 {
		JSONValidationError(w, "validation failed", map[string]string{"id": "required"}, http.StatusBadRequest)
		return
	}

	s, err := h.Summary.GetWithLatestHistory(r.Context(), input.ID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if s == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
