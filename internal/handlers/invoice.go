package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/openinvoice/openinvoice/internal/httpx"
	"github.com/openinvoice/openinvoice/internal/models"
	"github.com/openinvoice/openinvoice/internal/repo"
)

// InvoiceHandler exposes the invoice CRUD surface consumed by the UI layer.
type InvoiceHandler struct {
	Invoices *repo.Invoices
	Business *repo.Business
}

func NewInvoiceHandler(invoices *repo.Invoices, business *repo.Business) *InvoiceHandler {
	return &InvoiceHandler{Invoices: invoices, Business: business}
}

// List: GET /invoices – all invoices, or ?status= for the status index.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		invs []models.Invoice
		err  error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		invs, err = h.Invoices.ByStatus(r.Context(), status)
	} else {
		invs, err = h.Invoices.GetAll(r.Context())
	}
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invs, "total": len(invs)})
}

// Create: POST /invoices – totals arrive frozen from the caller; the
// business snapshot is filled from the current profile when omitted, and the
// invoice number is generated when omitted.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	if err := httpx.Decode(r.Body, &inv); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if (inv.Business == models.BusinessSnapshot{}) {
		if biz, ok, err := h.Business.Get(r.Context()); err != nil {
			respondError(w, err)
			return
		} else if ok {
			inv.Business = models.BusinessSnapshot(*biz)
		}
	}
	if inv.InvoiceNumber == "" {
		num, err := h.Invoices.NextNumber(r.Context(), time.Now())
		if err != nil {
			respondError(w, err)
			return
		}
		inv.InvoiceNumber = num
	}
	if _, err := h.Invoices.Save(r.Context(), &inv); err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Get: GET /invoices/get?id=...
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}
	inv, err := h.Invoices.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Update: POST /invoices/update?id=... – partial merge, bumps updatedAt.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}
	var patch models.InvoicePatch
	if err := httpx.Decode(r.Body, &patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	inv, err := h.Invoices.Update(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Delete: POST /invoices/delete?id=...
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}
	if err := h.Invoices.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// DeleteYear: POST /invoices/delete-year?year=... – all-or-nothing bulk
// removal of one effective year; responds with the count deleted.
func (h *InvoiceHandler) DeleteYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_year", nil)
		return
	}
	n, err := h.Invoices.DeleteByYear(r.Context(), year)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"deleted": n})
}

// NextNumber: GET /invoices/next-number
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	num, err := h.Invoices.NextNumber(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"invoiceNumber": num})
}

func invoiceID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}
