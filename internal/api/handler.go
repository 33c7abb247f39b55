// Package api exposes the back-office stores over HTTP. Every domain gets the
// same set of routes for its derived view, filters, selection and CRUD
// operations; a few domains add routes for their computed values.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/mesh-intelligence/pharmadesk/internal/backoffice"
	"github.com/mesh-intelligence/pharmadesk/internal/export"
	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	office  *backoffice.Backoffice
	metrics http.Handler
	origins []string
	now     func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithMetrics serves h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(hd *Handler) { hd.metrics = h }
}

// WithAllowedOrigins sets the CORS origins. The default allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(hd *Handler) { hd.origins = origins }
}

// New constructs a Handler.
func New(office *backoffice.Backoffice, opts ...Option) *Handler {
	h := &Handler{office: office, origins: []string{"*"}, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: h.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/low-stock", h.lowStock)
		r.Get("/export.xlsx", h.exportProducts)
		mount(r, h.office.Products)
	})
	r.Route("/customers", func(r chi.Router) {
		mount(r, h.office.Customers)
	})
	r.Route("/orders", func(r chi.Router) {
		r.Get("/total", h.ordersTotal)
		r.Get("/export.xlsx", h.exportOrders)
		r.Get("/{id}/total", h.orderTotal)
		mount(r, h.office.Orders)
	})
	r.Route("/quotations", func(r chi.Router) {
		r.Get("/{id}/total", h.quotationTotal)
		mount(r, h.office.Quotations)
	})
	r.Route("/wishlist", func(r chi.Router) {
		r.Post("/status", h.wishlistStatus)
		r.Get("/export.xlsx", h.exportWishlist)
		mount(r, h.office.Wishlist)
	})
	r.Route("/closings", func(r chi.Router) {
		r.Get("/{id}/summary", h.closingSummary)
		mount(r, h.office.Closings)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	items := h.office.ProductStore.LowStock()
	if items == nil {
		items = []types.Product{}
	}
	respondJSON(w, http.StatusOK, items)
}

type totalResponse struct {
	ID      string  `json:"id,omitempty"`
	Total   float64 `json:"total"`
	Expired *bool   `json:"expired,omitempty"`
}

func (h *Handler) ordersTotal(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, totalResponse{Total: h.office.OrderStore.ViewTotal()})
}

func (h *Handler) orderTotal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, ok := h.office.OrderStore.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, types.ErrNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, totalResponse{ID: id, Total: o.Total()})
}

func (h *Handler) quotationTotal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q, ok := h.office.QuotationStore.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, types.ErrNotFound.Error())
		return
	}
	expired := q.Expired(h.now())
	respondJSON(w, http.StatusOK, totalResponse{ID: id, Total: q.Total(), Expired: &expired})
}

type closingSummary struct {
	ID         string  `json:"id"`
	Expected   float64 `json:"expected"`
	Counted    float64 `json:"counted"`
	Difference float64 `json:"difference"`
	Balanced   bool    `json:"balanced"`
}

func (h *Handler) closingSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := h.office.ClosingStore.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, types.ErrNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, closingSummary{
		ID:         id,
		Expected:   c.Expected(),
		Counted:    c.Counted(),
		Difference: c.Difference(),
		Balanced:   c.Balanced(),
	})
}

type statusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type statusResponse struct {
	Updated int               `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

func (h *Handler) wishlistStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	status, err := types.ParseWishlistStatus(req.Status)
	if err != nil {
		respondErr(w, err)
		return
	}

	n, err := h.office.SetWishlistStatus(r.Context(), req.IDs, status)
	var bulk *backoffice.BulkError
	switch {
	case errors.As(err, &bulk):
		failed := make(map[string]string, len(bulk.Failed))
		for id, e := range bulk.Failed {
			failed[id] = e.Error()
		}
		respondJSON(w, http.StatusMultiStatus, statusResponse{Updated: n, Failed: failed})
	case err != nil:
		respondErr(w, err)
	default:
		respondJSON(w, http.StatusOK, statusResponse{Updated: n})
	}
}

func (h *Handler) exportProducts(w http.ResponseWriter, r *http.Request) {
	h.xlsx(w, "products", func(out io.Writer) error {
		return export.Products(out, h.office.ProductStore.View())
	})
}

func (h *Handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	h.xlsx(w, "orders", func(out io.Writer) error {
		return export.Orders(out, h.office.OrderStore.View())
	})
}

func (h *Handler) exportWishlist(w http.ResponseWriter, r *http.Request) {
	h.xlsx(w, "wishlist", func(out io.Writer) error {
		return export.Wishlist(out, h.office.WishlistStore.View())
	})
}

// xlsx streams a workbook named after name and the current date.
func (h *Handler) xlsx(w http.ResponseWriter, name string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	filename := fmt.Sprintf("%s-%s.xlsx", name, h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
