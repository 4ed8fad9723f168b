// internal/core/services/export.go
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// ExportService hands export requests to the worker and reads back their status
type ExportService struct {
	queue     ports.TaskQueue
	cache     ports.CacheRepository
	clock     ports.Clock
	statusTTL time.Duration
	logger    *slog.Logger
}

var _ ports.ExportService = (*ExportService)(nil)

// NewExportService creates a new export service
func NewExportService(queue ports.TaskQueue, cache ports.CacheRepository, clock ports.Clock, statusTTL time.Duration, logger *slog.Logger) *ExportService {
	if clock == nil {
		clock = SystemClock()
	}
	return &ExportService{
		queue:     queue,
		cache:     cache,
		clock:     clock,
		statusTTL: statusTTL,
		logger:    logger.With(slog.String("service", "exports")),
	}
}

// Request enqueues an export of the whole bag
func (s *ExportService) Request(ctx context.Context, user domain.User) (*domain.ExportStatus, error) {
	if user.IsAnonymous() {
		return nil, domain.ErrUnauthorized()
	}

	id, err := s.queue.EnqueueExport(ctx, user)
	if err != nil {
		return nil, domain.Storage("enqueue export", err)
	}

	status := &domain.ExportStatus{
		ID:          id,
		State:       domain.ExportQueued,
		RequestedBy: user.ID,
		RequestedAt: s.clock.Now(),
	}
	if err := s.cache.SetWithTTL(ctx, ExportStatusKey(id), status, s.statusTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to record export status", "err", err)
	}

	s.logger.InfoContext(ctx, "export requested",
		slog.String("export_id", id),
		slog.Int64("user_id", user.ID))
	return status, nil
}

// Status returns the last recorded state of an export
func (s *ExportService) Status(ctx context.Context, id string) (*domain.ExportStatus, error) {
	exists, err := s.cache.Exists(ctx, ExportStatusKey(id))
	if err != nil {
		return nil, domain.Storage("get export status", err)
	}
	if !exists {
		return nil, domain.NotFound("export", id)
	}

	var status domain.ExportStatus
	if err := s.cache.Get(ctx, ExportStatusKey(id), &status); err != nil {
		return nil, domain.Storage("get export status", err)
	}
	return &status, nil
}
