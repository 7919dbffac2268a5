package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kidsphere/kidsphere/internal/models"
)

// ChildSettingsStore reads and writes parental controls.
type ChildSettingsStore interface {
	GetChildSettings(ctx context.Context, userID int64) (models.ChildSettings, error)
	UpsertChildSettings(ctx context.Context, cs models.ChildSettings) error
}

type SettingsHandler struct {
	store ChildSettingsStore
}

func NewSettingsHandler(store ChildSettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	cs, err := h.store.GetChildSettings(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load child settings", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, cs)
}

type updateSettingsRequest struct {
	AllowExplore *bool `json:"allowExplore"`
	AllowShorts  *bool `json:"allowShorts"`
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cs, err := h.store.GetChildSettings(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load child settings", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	if req.AllowExplore != nil {
		cs.AllowExplore = *req.AllowExplore
	}
	if req.AllowShorts != nil {
		cs.AllowShorts = *req.AllowShorts
	}

	if err := h.store.UpsertChildSettings(r.Context(), cs); err != nil {
		slog.Error("failed to save child settings", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, cs)
}
