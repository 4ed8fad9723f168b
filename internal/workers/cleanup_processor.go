// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// CleanupProcessor removes exports past their retention
type CleanupProcessor struct {
	storage   ports.ObjectStorage
	clock     ports.Clock
	prefix    string
	retention time.Duration
	logger    *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(storage ports.ObjectStorage, clock ports.Clock, prefix string, retention time.Duration, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		storage:   storage,
		clock:     clock,
		prefix:    prefix,
		retention: retention,
		logger:    logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupExports deletes every export object older than the retention
func (p *CleanupProcessor) CleanupExports(ctx context.Context, _ *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up exports", slog.Duration("retention", p.retention))

	objects, err := p.storage.List(ctx, p.prefix)
	if err != nil {
		return fmt.Errorf("failed to list exports: %w", err)
	}

	cutoff := p.clock.Now().Add(-p.retention)
	var stale []string
	for _, obj := range objects {
		if obj.LastModified.Before(cutoff) {
			stale = append(stale, obj.Key)
		}
	}

	if len(stale) == 0 {
		p.logger.DebugContext(ctx, "no exports to clean up", slog.Int("scanned", len(objects)))
		return nil
	}

	if err := p.storage.DeleteMultiple(ctx, stale); err != nil {
		return fmt.Errorf("failed to delete exports: %w", err)
	}

	p.logger.InfoContext(ctx, "exports cleaned up",
		slog.Int("scanned", len(objects)),
		slog.Int("deleted", len(stale)))
	return nil
}
