package referrerhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"radhub/internal/domain/referrer"
	"radhub/internal/transport/http/api"
	"radhub/internal/transport/http/middleware"
	"radhub/internal/transport/http/shared"
)

type Handler struct {
	Store *referrer.Store
}

func NewHandler(store *referrer.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/referrers", h.handleSearch)
	r.Get("/clinics", h.handleListClinics)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	referrers, err := h.Store.Search(r.Context(), r.URL.Query().Get("q"), page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "referrer_search_failed", "failed to search referrers", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, referrers, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.Store.ListClinics(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "clinic_list_failed", "failed to list clinics", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, clinics, middleware.GetRequestID(r.Context()))
}
