// internal/core/ports/export.go
package ports

import (
	"context"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

// ExportService queues bag exports and reports on them
type ExportService interface {
	Request(ctx context.Context, user domain.User) (*domain.ExportStatus, error)
	Status(ctx context.Context, id string) (*domain.ExportStatus, error)
}
