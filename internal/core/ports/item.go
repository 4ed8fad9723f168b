// internal/core/ports/item.go
package ports

import (
	"context"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

// ItemRepository defines the persistence port for bag items.
// Update and Delete do not report missing rows; callers check existence first.
type ItemRepository interface {
	Insert(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Filter(ctx context.Context, filter domain.ItemFilter) (*domain.ItemPage, error)
}

// ItemService defines the application service port for bag items.
// Mutating calls take the caller's identity and reject anonymous users.
type ItemService interface {
	Create(ctx context.Context, user domain.User, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, user domain.User, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, user domain.User, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) (*domain.ItemPage, error)
}

// ItemInvalidator drops cached copies of an item and of every listing
type ItemInvalidator interface {
	InvalidateItem(ctx context.Context, id int64) error
}
