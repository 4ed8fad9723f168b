// internal/core/ports/tasks.go
package ports

import (
	"context"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

// TaskQueue hands work to the background worker
type TaskQueue interface {
	EnqueueDrawRecorded(ctx context.Context, taken *domain.TakenItem) error
	EnqueueExport(ctx context.Context, requestedBy domain.User) (string, error)
}
