package qrhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"radhub/internal/domain/audit"
	"radhub/internal/domain/qr"
	"radhub/internal/transport/http/api"
	"radhub/internal/transport/http/middleware"
	"radhub/internal/transport/http/shared"
)

type Handler struct {
	Service       *qr.Service
	Audit         *audit.Service
	PublicBaseURL string
}

func NewHandler(service *qr.Service, auditSvc *audit.Service, publicBaseURL string) *Handler {
	return &Handler{Service: service, Audit: auditSvc, PublicBaseURL: publicBaseURL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/qr", func(r chi.Router) {
		r.Post("/links", h.handleCreateLink)
		r.Get("/links", h.handleListLinks)
		r.Get("/links/{slug}/image.png", h.handleImage)
		r.Get("/links/{slug}/stats", h.handleStats)
	})
}

func (h *Handler) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var payload qr.Link
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		payload.CreatedBy = user.UserID
	}

	link, err := h.Service.CreateLink(r.Context(), payload)
	switch {
	case errors.Is(err, qr.ErrInvalidSlug), errors.Is(err, qr.ErrInvalidTarget):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, qr.ErrSlugTaken):
		api.Fail(w, http.StatusConflict, "slug_taken", "slug already in use", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "qr_create_failed", "failed to create QR link", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), link.CreatedBy, "qr.link.create", "qr_link", link.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), link); err != nil {
		slog.Warn("audit qr.link.create failed", "err", err)
	}
	api.Created(w, link, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "qr_list_failed", "failed to list QR links", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, links, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	link, err := h.Service.Resolve(r.Context(), slug)
	if errors.Is(err, qr.ErrLinkNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "QR link not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "qr_image_failed", "failed to render QR image", middleware.GetRequestID(r.Context()))
		return
	}

	size := 512
	if raw := r.URL.Query().Get("size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 64 && parsed <= 2048 {
			size = parsed
		}
	}

	content := strings.TrimRight(h.PublicBaseURL, "/") + "/r/" + link.Slug
	image, err := qr.Image(content, size)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "qr_image_failed", "failed to render QR image", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(image); err != nil {
		slog.Warn("qr image write failed", "err", err)
	}
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, qr.ErrLinkNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "QR link not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "qr_stats_failed", "failed to load scan stats", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

// HandleRedirect serves the public short-link path. The visitor is
// redirected before the scan insert happens; tracking is best effort.
func (h *Handler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	link, err := h.Service.Resolve(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, link.TargetURL, http.StatusFound)

	if err := h.Service.Track(r.Context(), link.ID, r.UserAgent(), r.Referer(), shared.ClientIP(r)); err != nil {
		slog.Warn("qr scan insert failed", "slug", link.Slug, "err", err)
	}
}
