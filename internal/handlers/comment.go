package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fleetops/fleet-asset/internal/models"
	"github.com/fleetops/fleet-asset/internal/repo"
)

// CommentHandler serves the comment command endpoints.
type CommentHandler struct {
	Comments *repo.CommentRepo
}

// FetchComments handles POST /v1/assets/fetch-comments.
func (h *CommentHandler) FetchComments(w http.ResponseWriter, r *http.Request) {
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

	comments, err := h.Comments.ListByAsset(r.Context(), input.AssetID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /v1/assets/add-comment. Blank or whitespace-only
// text is rejected before any store call.
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AssetID int    `json:"assetId"`
		Text    string `json:"text"`
		Author  string `json:"author"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.AssetID <= 0 {
		fields["assetId"] = "required"
	}
	if strings.TrimSpace(input.Text) == "" {
		fields["text"] = "required"
	}
	if input.Author == "" {
		fields["author"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	c, err := h.Comments.Add(r.Context(), input.AssetID, input.Text, input.Author)
	if err != nil {
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// DeleteComment handles POST /v1/assets/delete-comment.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CommentID int `json:"commentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.CommentID <= 0 {
		JSONValidationError(w, "validation failed", map[string]string{"commentId": "required"}, http.StatusBadRequest)
		return
	}

	if err := h.Comments.Delete(r.Context(), input.CommentID); err != nil {
		if errors.Is(err, repo.ErrCommentNotFound) {
			JSONError(w, repo.ErrCommentNotFound.Error(), http.StatusNotFound)
			return
		}
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
