package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/openinvoice/openinvoice/internal/handlers"
	"github.com/openinvoice/openinvoice/internal/httpx"
	"github.com/openinvoice/openinvoice/internal/middleware"
	"github.com/openinvoice/openinvoice/internal/repo"
	"github.com/openinvoice/openinvoice/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares
// applied.
func New(s *store.Store, log zerolog.Logger, quotaBytes int64) http.Handler {
	mux := http.NewServeMux()

	invoices := repo.NewInvoices(s)
	clients := repo.NewClients(s)
	business := repo.NewBusiness(s)
	settings := repo.NewSettings(s)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.DumpCollection(r.Context(), "settings"); err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Invoice endpoints. List/Create via /invoices; the rest via query-param
	// subroutes for simplicity.
	ih := handlers.NewInvoiceHandler(invoices, business)
	mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/invoices/get", requireMethod(http.MethodGet, ih.Get))
	mux.HandleFunc("/invoices/update", requireMethod(http.MethodPost, ih.Update))
	mux.HandleFunc("/invoices/delete", requireMethod(http.MethodPost, ih.Delete))
	mux.HandleFunc("/invoices/delete-year", requireMethod(http.MethodPost, ih.DeleteYear))
	mux.HandleFunc("/invoices/next-number", requireMethod(http.MethodGet, ih.NextNumber))

	// Client endpoints
	ch := handlers.NewClientHandler(clients)
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/clients/update", requireMethod(http.MethodPost, ch.Update))
	mux.HandleFunc("/clients/delete", requireMethod(http.MethodPost, ch.Delete))

	// Business profile (singleton, partial merge)
	bh := handlers.NewBusinessHandler(business)
	mux.HandleFunc("/business", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			bh.Get(w, r)
		case http.MethodPost:
			bh.Save(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})

	// Settings
	sh := handlers.NewSettingHandler(settings)
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.Get(w, r)
		case http.MethodPost:
			sh.Set(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})

	// Derived views
	dh := handlers.NewDashboardHandler(invoices, s, quotaBytes)
	mux.HandleFunc("/dashboard", requireMethod(http.MethodGet, dh.Summary))
	mux.HandleFunc("/storage", requireMethod(http.MethodGet, dh.Storage))

	return middleware.RequestID(middleware.Recover(log, middleware.AccessLog(log, mux)))
}

func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			methodNotAllowed(w, method)
			return
		}
		h(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}
