package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/openinvoice/openinvoice/internal/httpx"
	"github.com/openinvoice/openinvoice/internal/repo"
	"github.com/openinvoice/openinvoice/internal/services"
)

// DashboardHandler serves the derived views: year rollups, filtered lists
// and storage accounting.
type DashboardHandler struct {
	Invoices   *repo.Invoices
	Store      services.CollectionDumper
	QuotaBytes int64
}

func NewDashboardHandler(invoices *repo.Invoices, dumper services.CollectionDumper, quotaBytes int64) *DashboardHandler {
	return &DashboardHandler{Invoices: invoices, Store: dumper, QuotaBytes: quotaBytes}
}

// Summary: GET /dashboard?year=&tab=&q=
// Year defaults to the current calendar year when it has data, else the most
// recent year present.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	invs, err := h.Invoices.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	years, excludedYears := services.AvailableYears(invs)
	year := services.DefaultYear(years, time.Now())
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y <= 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_year", nil)
			return
		}
		year = y
	}
	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = services.TabAll
	}
	query := r.URL.Query().Get("q")
	matched, excluded := services.FilterInvoices(invs, year, tab, query)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"year":          year,
		"years":         years,
		"rollup":        services.Rollup(invs, year),
		"invoices":      matched,
		"excluded":      excluded,
		"excludedYears": excludedYears,
	})
}

// Storage: GET /storage
func (h *DashboardHandler) Storage(w http.ResponseWriter, r *http.Request) {
	usage, err := services.StorageUsage(r.Context(), h.Store, h.QuotaBytes)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, usage)
}
