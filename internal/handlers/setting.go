package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/openinvoice/openinvoice/internal/httpx"
	"github.com/openinvoice/openinvoice/internal/repo"
)

// SettingHandler serves typed key/value settings.
type SettingHandler struct {
	Settings *repo.Settings
}

func NewSettingHandler(settings *repo.Settings) *SettingHandler {
	return &SettingHandler{Settings: settings}
}

// Get: GET /settings?key=... – value is null when absent, never an error.
// Without a key, returns every setting.
func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		all, err := h.Settings.All(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, all)
		return
	}
	value, ok, err := h.Settings.Get(r.Context(), key)
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		value = json.RawMessage("null")
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"key": key, "value": value})
}

// Set: POST /settings with {"key": ..., "value": ...}
func (h *SettingHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := httpx.Decode(r.Body, &req); err != nil || req.Key == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Settings.Set(r.Context(), req.Key, req.Value); err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"key": req.Key})
}
