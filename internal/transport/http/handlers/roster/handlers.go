package rosterhandler

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"radhub/internal/domain/audit"
	"radhub/internal/domain/roster"
	"radhub/internal/export/excel"
	"radhub/internal/export/pdf"
	"radhub/internal/platform/metrics"
	"radhub/internal/transport/http/api"
	"radhub/internal/transport/http/middleware"
	"radhub/internal/transport/http/shared"
)

// Handler converts scheduling-system CSV exports into printable weekly
// rosters. Nothing is persisted: every request parses the upload
// fresh and the result goes straight back as a download.
type Handler struct {
	MaxUploadBytes int64
	Audit          *audit.Service
	Metrics        *metrics.Collector
}

func NewHandler(maxUploadBytes int64, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{MaxUploadBytes: maxUploadBytes, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/roster", func(r chi.Router) {
		r.Post("/preview", h.handlePreview)
		r.Post("/convert", h.handleConvert)
	})
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	parsed, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	weeks := make([]string, 0, len(parsed.Weeks))
	for _, week := range parsed.Weeks {
		weeks = append(weeks, week.Format("2006-01-02"))
	}
	api.Success(w, map[string]any{
		"weeks":      weeks,
		"clinics":    parsed.Clinics,
		"entryCount": len(parsed.Entries),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	parsed, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	if len(parsed.Weeks) == 0 {
		api.Fail(w, http.StatusBadRequest, "no_weeks", "no roster weeks found in the uploaded file", middleware.GetRequestID(r.Context()))
		return
	}

	week, ok := h.selectWeek(w, r, parsed)
	if !ok {
		return
	}

	grid := roster.BuildWeekGrid(parsed.Entries, week)

	format := r.FormValue("format")
	if format == "" {
		format = "xlsx"
	}

	var payload []byte
	var filename, contentType string
	switch format {
	case "xlsx":
		buf, err := excel.Write(grid)
		if err != nil {
			slog.Warn("workbook generation failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "workbook_failed", "failed to generate Excel file", middleware.GetRequestID(r.Context()))
			return
		}
		payload = buf.Bytes()
		filename = excel.Filename(week)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		buf, err := pdf.Write(grid)
		if err != nil {
			slog.Warn("pdf generation failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to generate PDF file", middleware.GetRequestID(r.Context()))
			return
		}
		payload = buf.Bytes()
		filename = pdf.Filename(week)
		contentType = "application/pdf"
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be xlsx or pdf", middleware.GetRequestID(r.Context()))
		return
	}

	h.recordConversion(r, week, format, len(parsed.Entries))
	if h.Metrics != nil {
		h.Metrics.RecordConversion()
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		slog.Warn("roster download write failed", "err", err)
	}
}

// readUpload reads and parses the multipart "file" field. Any failure
// collapses into the one user-facing parse message; the caller is
// expected to fix the file and re-upload.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*roster.Parsed, bool) {
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "csv_parse_failed", "failed to parse CSV file", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "csv_parse_failed", "failed to parse CSV file", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.MaxUploadBytes))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "csv_parse_failed", "failed to parse CSV file", middleware.GetRequestID(r.Context()))
		return nil, false
	}

	parsed, err := roster.Parse(string(data))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "csv_parse_failed", "failed to parse CSV file", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	return parsed, true
}

// selectWeek resolves the requested week against the parsed week list,
// defaulting to the earliest week like the upload screen does.
func (h *Handler) selectWeek(w http.ResponseWriter, r *http.Request, parsed *roster.Parsed) (time.Time, bool) {
	raw := r.FormValue("week")
	if raw == "" {
		return parsed.Weeks[0], true
	}
	requested, err := shared.ParseDate(raw)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "week_not_found", "no roster data for the requested week", middleware.GetRequestID(r.Context()))
		return time.Time{}, false
	}
	requested = time.Date(requested.Year(), requested.Month(), requested.Day(), 0, 0, 0, 0, time.UTC)
	for _, week := range parsed.Weeks {
		if week.Equal(requested) {
			return week, true
		}
	}
	api.Fail(w, http.StatusBadRequest, "week_not_found", "no roster data for the requested week", middleware.GetRequestID(r.Context()))
	return time.Time{}, false
}

func (h *Handler) recordConversion(r *http.Request, week time.Time, format string, entryCount int) {
	if h.Audit == nil {
		return
	}
	actor := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		actor = user.UserID
	}
	details := map[string]any{"format": format, "entryCount": entryCount}
	if err := h.Audit.Record(r.Context(), actor, "roster.convert", "roster_week", week.Format("2006-01-02"), middleware.GetRequestID(r.Context()), shared.ClientIP(r), details); err != nil {
		slog.Warn("audit roster.convert failed", "err", err)
	}
}
