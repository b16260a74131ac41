package handlers

import (
	"net/http"
	"strconv"

	"github.com/openinvoice/openinvoice/internal/httpx"
	"github.com/openinvoice/openinvoice/internal/models"
	"github.com/openinvoice/openinvoice/internal/repo"
)

// ClientHandler is plain CRUD over the clients collection.
type ClientHandler struct {
	Clients *repo.Clients
}

func NewClientHandler(clients *repo.Clients) *ClientHandler {
	return &ClientHandler{Clients: clients}
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Clients.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
}

// Create: POST /clients – duplicate emails surface as 409.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := httpx.Decode(r.Body, &c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if _, err := h.Clients.Save(r.Context(), &c); err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /clients/update – full replace by id.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := httpx.Decode(r.Body, &c); err != nil || c.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Clients.Update(r.Context(), &c); err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /clients/delete?id=... – no cascade onto invoices.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Clients.Delete(r.Context(), uint(id)); err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
