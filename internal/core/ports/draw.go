// internal/core/ports/draw.go
package ports

import (
	"context"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

// DrawTx exposes the statements of a draw bound to one transaction
type DrawTx interface {
	CountEligible(ctx context.Context) (int64, error)
	// LockEligibleAt locks the eligible item at offset in id-descending order.
	// ok is false when no row is left at that offset.
	LockEligibleAt(ctx context.Context, offset int64) (id int64, ok bool, err error)
	FindItem(ctx context.Context, id int64) (*domain.Item, error)
	// DecrementQuantity returns false when the item had no unit left to take
	DecrementQuantity(ctx context.Context, id int64) (bool, error)
	InsertTaken(ctx context.Context, taken *domain.TakenItem) (*domain.TakenItem, error)
}

// DrawRepository defines the persistence port for draw history
type DrawRepository interface {
	// RunInTx commits when fn returns nil and rolls back otherwise
	RunInTx(ctx context.Context, fn func(tx DrawTx) error) error
	UpdateTaken(ctx context.Context, taken *domain.TakenItem) error
	FindTakenByID(ctx context.Context, id int64) (*domain.TakenItem, error)
	// Last returns the most recent draw regardless of its done flag
	Last(ctx context.Context) (*domain.TakenItem, error)
	ForItem(ctx context.Context, itemID int64) ([]*domain.TakenItem, error)
	ListAll(ctx context.Context) ([]*domain.TakenItem, error)
}

// DrawService defines the application service port for draws.
// A nil TakenItem with a nil error means there is nothing to report.
type DrawService interface {
	Draw(ctx context.Context, user domain.User) (*domain.TakenItem, error)
	MarkDone(ctx context.Context, user domain.User, takenID int64) (*domain.TakenItem, error)
	UpdateTaken(ctx context.Context, user domain.User, taken *domain.TakenItem) (*domain.TakenItem, error)
	Last(ctx context.Context) (*domain.TakenItem, error)
	ForItem(ctx context.Context, itemID int64) ([]*domain.TakenItem, error)
}
