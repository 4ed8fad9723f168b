// internal/workers/tasks.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

const (
	TypeExportBag      = "bag:export"
	TypeCleanupExports = "bag:cleanup_exports"
	TypeDrawRecorded   = "draw:recorded"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ExportPayload is the payload of a bag export task
type ExportPayload struct {
	ExportID    string    `json:"export_id"`
	RequestedBy int64     `json:"requested_by"`
	Username    string    `json:"username"`
	RequestedAt time.Time `json:"requested_at"`
}

// DrawRecordedPayload is the payload of a draw notification task
type DrawRecordedPayload struct {
	TakenID        int64     `json:"taken_id"`
	ItemID         int64     `json:"item_id"`
	ItemName       string    `json:"item_name,omitempty"`
	Rounds         int       `json:"rounds"`
	ExtractionTime time.Time `json:"extraction_time"`
}

// NewExportTask builds a bag export task
func NewExportTask(p ExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export payload: %w", err)
	}
	return asynq.NewTask(TypeExportBag, data,
		asynq.TaskID(p.ExportID),
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
	), nil
}

// NewDrawRecordedTask builds a draw notification task
func NewDrawRecordedTask(p DrawRecordedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draw payload: %w", err)
	}
	return asynq.NewTask(TypeDrawRecorded, data,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(5),
	), nil
}

// NewCleanupExportsTask builds the periodic export cleanup task
func NewCleanupExportsTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupExports, nil,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
	)
}

// enqueuer is the part of *asynq.Client the task client needs
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskClient implements ports.TaskQueue on an asynq client
type TaskClient struct {
	client enqueuer
	logger *slog.Logger
}

var _ ports.TaskQueue = (*TaskClient)(nil)

// NewTaskClient creates a task client; pass an *asynq.Client in production
func NewTaskClient(client enqueuer, logger *slog.Logger) *TaskClient {
	return &TaskClient{
		client: client,
		logger: logger.With(slog.String("component", "task_client")),
	}
}

// EnqueueExport schedules an export and returns its id
func (c *TaskClient) EnqueueExport(ctx context.Context, requestedBy domain.User) (string, error) {
	payload := ExportPayload{
		ExportID:    uuid.NewString(),
		RequestedBy: requestedBy.ID,
		Username:    requestedBy.Username,
		RequestedAt: time.Now().UTC(),
	}

	task, err := NewExportTask(payload)
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue export: %w", err)
	}

	c.logger.InfoContext(ctx, "export enqueued",
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))
	return payload.ExportID, nil
}

// EnqueueDrawRecorded schedules a notification for a committed draw
func (c *TaskClient) EnqueueDrawRecorded(ctx context.Context, taken *domain.TakenItem) error {
	payload := DrawRecordedPayload{
		TakenID:        taken.ID,
		ItemID:         taken.ItemID,
		Rounds:         taken.Rounds,
		ExtractionTime: taken.ExtractionTime,
	}
	if taken.Item != nil {
		payload.ItemName = taken.Item.Name
	}

	task, err := NewDrawRecordedTask(payload)
	if err != nil {
		return err
	}

	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue draw notification: %w", err)
	}
	return nil
}
