// internal/workers/notifications_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/roadie-bag/internal/core/ports"
	"github.com/ammerola/roadie-bag/internal/core/services"
)

// DrawNotificationProcessor handles draw:recorded tasks
type DrawNotificationProcessor struct {
	counters ports.CacheRepository
	logger   *slog.Logger
}

// NewDrawNotificationProcessor creates a new draw notification processor
func NewDrawNotificationProcessor(counters ports.CacheRepository, logger *slog.Logger) *DrawNotificationProcessor {
	return &DrawNotificationProcessor{
		counters: counters,
		logger:   logger.With(slog.String("processor", "draw_notification")),
	}
}

// ProcessDrawRecorded announces a draw and bumps the item's draw counter
func (p *DrawNotificationProcessor) ProcessDrawRecorded(ctx context.Context, t *asynq.Task) error {
	var payload DrawRecordedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	count, err := p.counters.Increment(ctx, services.DrawCountKey(payload.ItemID))
	if err != nil {
		return fmt.Errorf("failed to bump draw counter: %w", err)
	}

	p.logger.InfoContext(ctx, "draw recorded",
		slog.Int64("taken_id", payload.TakenID),
		slog.Int64("item_id", payload.ItemID),
		slog.String("item_name", payload.ItemName),
		slog.Int("rounds", payload.Rounds),
		slog.Int64("times_drawn", count))
	return nil
}
