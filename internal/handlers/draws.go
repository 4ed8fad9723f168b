// internal/handlers/draws.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ammerola/roadie-bag/internal/auth"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// DrawHandler handles draw-related HTTP requests
type DrawHandler struct {
	service ports.DrawService
	logger  *slog.Logger
}

// NewDrawHandler creates a new draw handler
func NewDrawHandler(service ports.DrawService, logger *slog.Logger) *DrawHandler {
	return &DrawHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "draws")),
	}
}

// TakenRequest is the body of a draw record overwrite
type TakenRequest struct {
	ItemID         int64     `json:"item_id"`
	ExtractionTime time.Time `json:"extraction_time"`
	Rounds         int       `json:"rounds"`
	Done           bool      `json:"done"`
}

// Draw handles POST /api/v1/draws. An empty bag answers 204.
func (h *DrawHandler) Draw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taken, err := h.service.Draw(ctx, auth.UserFromContext(ctx))
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}
	if taken == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusCreated, taken)
}

// Last handles GET /api/v1/draws/last. A finished or missing draw answers 204.
func (h *DrawHandler) Last(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taken, err := h.service.Last(ctx)
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}
	if taken == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusOK, taken)
}

// UpdateTaken handles PUT /api/v1/draws/{id}
func (h *DrawHandler) UpdateTaken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var req TakenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	taken, err := h.service.UpdateTaken(ctx, auth.UserFromContext(ctx), &domain.TakenItem{
		ID:             id,
		ItemID:         req.ItemID,
		ExtractionTime: req.ExtractionTime,
		Rounds:         req.Rounds,
		Done:           req.Done,
	})
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusOK, taken)
}

// MarkDone handles POST /api/v1/draws/{id}/done
func (h *DrawHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	taken, err := h.service.MarkDone(ctx, auth.UserFromContext(ctx), id)
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusOK, taken)
}
