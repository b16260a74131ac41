package handlers

import (
	"net/http"

	"github.com/openinvoice/openinvoice/internal/httpx"
	"github.com/openinvoice/openinvoice/internal/models"
	"github.com/openinvoice/openinvoice/internal/repo"
)

// BusinessHandler serves the singleton profile.
type BusinessHandler struct {
	Business *repo.Business
}

func NewBusinessHandler(business *repo.Business) *BusinessHandler {
	return &BusinessHandler{Business: business}
}

// Get: GET /business – null until the first save (a fresh install, not an
// error).
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	biz, ok, err := h.Business.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		httpx.JSON(w, http.StatusOK, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, biz)
}

// Save: POST /business – partial merge; omitted fields survive.
func (h *BusinessHandler) Save(w http.ResponseWriter, r *http.Request) {
	var patch models.BusinessPatch
	if err := httpx.Decode(r.Body, &patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	biz, err := h.Business.Save(r.Context(), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, biz)
}
