// internal/core/services/item.go
package services

import (
	"context"
	"log/slog"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// ItemService handles bag item business logic
type ItemService struct {
	repo   ports.ItemRepository
	clock  ports.Clock
	logger *slog.Logger
}

// Statically assert that *ItemService implements the ItemService interface.
var _ ports.ItemService = (*ItemService)(nil)

// NewItemService creates a new item service
func NewItemService(repo ports.ItemRepository, clock ports.Clock, logger *slog.Logger) *ItemService {
	if clock == nil {
		clock = SystemClock()
	}
	return &ItemService{
		repo:   repo,
		clock:  clock,
		logger: logger.With(slog.String("service", "items")),
	}
}

// Create validates and stores a new item owned by user
func (s *ItemService) Create(ctx context.Context, user domain.User, item *domain.Item) (*domain.Item, error) {
	if user.IsAnonymous() {
		return nil, domain.ErrUnauthorized()
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	toStore := *item
	toStore.ID = 0
	toStore.AddedBy = domain.User{ID: user.ID, Username: user.Username}
	toStore.CreatedAt = s.clock.Now()

	stored, err := s.repo.Insert(ctx, &toStore)
	if err != nil {
		return nil, storageErr("insert item", err)
	}

	s.logger.InfoContext(ctx, "item created",
		slog.Int64("item_id", stored.ID),
		slog.Int64("user_id", user.ID),
		slog.String("size", stored.Size.String()),
		slog.Bool("infinite", stored.Infinite))

	return stored, nil
}

// Update overwrites an existing item's editable fields
func (s *ItemService) Update(ctx context.Context, user domain.User, item *domain.Item) (*domain.Item, error) {
	if user.IsAnonymous() {
		return nil, domain.ErrUnauthorized()
	}
	if err := item.ValidateForUpdate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, item.ID)
	if err != nil {
		return nil, storageErr("get item", err)
	}
	if existing == nil {
		return nil, domain.NotFound("item", item.ID)
	}

	updated := *item
	updated.AddedBy = existing.AddedBy
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, storageErr("update item", err)
	}

	s.logger.InfoContext(ctx, "item updated",
		slog.Int64("item_id", updated.ID),
		slog.Int64("user_id", user.ID))

	return &updated, nil
}

// Delete removes an item; its draw history is kept
func (s *ItemService) Delete(ctx context.Context, user domain.User, id int64) error {
	if user.IsAnonymous() {
		return domain.ErrUnauthorized()
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return storageErr("check item", err)
	}
	if !exists {
		return domain.NotFound("item", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return storageErr("delete item", err)
	}

	s.logger.InfoContext(ctx, "item deleted",
		slog.Int64("item_id", id),
		slog.Int64("user_id", user.ID))

	return nil
}

// GetByID returns one item with its owner
func (s *ItemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("get item", err)
	}
	if item == nil {
		return nil, domain.NotFound("item", id)
	}
	return item, nil
}

// List returns one filtered page; a zero page size fails before the store is queried
func (s *ItemService) List(ctx context.Context, filter domain.ItemFilter) (*domain.ItemPage, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	page, err := s.repo.Filter(ctx, filter)
	if err != nil {
		return nil, storageErr("filter items", err)
	}
	return page, nil
}

// storageErr keeps domain errors intact and tags everything else as a store failure
func storageErr(op string, err error) error {
	if domain.KindOf(err) != "" {
		return err
	}
	return domain.Storage(op, err)
}
