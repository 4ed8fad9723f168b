// internal/handlers/exports.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/roadie-bag/internal/auth"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// ExportHandler handles spreadsheet export requests
type ExportHandler struct {
	service ports.ExportService
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ports.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "exports")),
	}
}

// RequestExport handles POST /api/v1/exports. The workbook is built by the
// worker; the response carries the id to poll.
func (h *ExportHandler) RequestExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := h.service.Request(ctx, auth.UserFromContext(ctx))
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/v1/exports/"+status.ID)
	respondJSON(ctx, w, h.logger, http.StatusAccepted, status)
}

// ExportStatus handles GET /api/v1/exports/{id}
func (h *ExportHandler) ExportStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if id == "" {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, "export id is required")
		return
	}

	status, err := h.service.Status(ctx, id)
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusOK, status)
}
