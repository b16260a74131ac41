package handlers

import (
	"errors"
	"net/http"

	"github.com/openinvoice/openinvoice/internal/httpx"
	"github.com/openinvoice/openinvoice/internal/repo"
	"github.com/openinvoice/openinvoice/internal/store"
)

// respondError maps the error taxonomy onto HTTP statuses in one place so
// every handler surfaces storage failures the same way.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, store.ErrConstraintViolation):
		httpx.JSONError(w, http.StatusConflict, "constraint_violation", nil)
	case errors.Is(err, store.ErrStorageUnavailable):
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_unavailable", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "storage_error", nil)
	}
}
