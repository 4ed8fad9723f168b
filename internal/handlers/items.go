// internal/handlers/items.go
package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ammerola/roadie-bag/internal/auth"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	service         ports.ItemService
	draws           ports.DrawService
	defaultPageSize int
	logger          *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(service ports.ItemService, draws ports.DrawService, defaultPageSize int, logger *slog.Logger) *ItemHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = domain.DefaultPageSize
	}
	return &ItemHandler{
		service:         service,
		draws:           draws,
		defaultPageSize: defaultPageSize,
		logger:          logger.With(slog.String("handler", "items")),
	}
}

// ItemRequest is the body of item create and update calls
type ItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	Size        *domain.ItemSize `json:"size"`
	Infinite    bool             `json:"infinite"`
}

// ToDomain builds an item; a missing size becomes Unknown so validation reports it
func (req *ItemRequest) ToDomain(id int64) *domain.Item {
	size := domain.SizeUnknown
	if req.Size != nil {
		size = *req.Size
	}
	return &domain.Item{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Size:        size,
		Infinite:    req.Infinite,
	}
}

// ListItems handles GET /api/v1/items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := h.parseFilter(r.URL.Query())
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	page, err := h.service.List(ctx, filter)
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusOK, page)
}

// GetItem handles GET /api/v1/items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.service.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusOK, item)
}

// CreateItem handles POST /api/v1/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.service.Create(ctx, auth.UserFromContext(ctx), req.ToDomain(0))
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "item created",
		slog.Int64("item_id", item.ID),
		slog.String("name", item.Name))
	respondJSON(ctx, w, h.logger, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/v1/items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var req ItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.service.Update(ctx, auth.UserFromContext(ctx), req.ToDomain(id))
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(ctx, auth.UserFromContext(ctx), id); err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "item deleted", slog.Int64("item_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ItemHistory handles GET /api/v1/items/{id}/draws
func (h *ItemHandler) ItemHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.draws.ForItem(ctx, id)
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}
	if history == nil {
		history = []*domain.TakenItem{}
	}

	respondJSON(ctx, w, h.logger, http.StatusOK, history)
}

// parseFilter reads a listing filter from the query string. List values may
// be repeated or comma separated.
func (h *ItemHandler) parseFilter(q url.Values) (domain.ItemFilter, error) {
	filter := domain.ItemFilter{PageSize: h.defaultPageSize, PageNum: 1}
	fields := make(map[string]string)

	for _, raw := range listValues(q, "added_by") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields["added_by"] = "added_by must be a list of user ids"
			break
		}
		filter.AddedBy = append(filter.AddedBy, id)
	}

	if v := q.Get("name"); v != "" {
		filter.Name = &v
	}
	if v := q.Get("description"); v != "" {
		filter.Description = &v
	}

	for _, raw := range listValues(q, "size") {
		size, err := domain.ParseItemSize(raw)
		if err != nil {
			fields["size"] = "size must be a list of size names or codes"
			break
		}
		filter.Sizes = append(filter.Sizes, size)
	}

	if v := q.Get("infinite"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fields["infinite"] = "infinite must be true or false"
		} else {
			filter.Infinite = &b
		}
	}

	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["page_size"] = "page_size must be a number"
		} else {
			filter.PageSize = n
		}
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["page"] = "page must be a number"
		} else {
			filter.PageNum = n
		}
	}

	if err := domain.ValidationFromFields(fields); err != nil {
		return domain.ItemFilter{}, err
	}
	return filter, nil
}

func listValues(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
