// internal/core/services/item_cache.go
package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

const (
	itemKeyPrefix     = "item"
	itemPageKeyPrefix = "items:page"
)

// CachingItemService serves reads from the cache and invalidates on writes
type CachingItemService struct {
	next   ports.ItemService
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

var (
	_ ports.ItemService     = (*CachingItemService)(nil)
	_ ports.ItemInvalidator = (*CachingItemService)(nil)
)

// NewCachingItemService wraps next with a read-through cache
func NewCachingItemService(next ports.ItemService, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *CachingItemService {
	return &CachingItemService{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("service", "items_cache")),
	}
}

func (s *CachingItemService) Create(ctx context.Context, user domain.User, item *domain.Item) (*domain.Item, error) {
	created, err := s.next.Create(ctx, user, item)
	if err != nil {
		return nil, err
	}
	s.invalidatePages(ctx)
	return created, nil
}

func (s *CachingItemService) Update(ctx context.Context, user domain.User, item *domain.Item) (*domain.Item, error) {
	updated, err := s.next.Update(ctx, user, item)
	if err != nil {
		return nil, err
	}
	s.logInvalidation(ctx, s.InvalidateItem(ctx, updated.ID))
	return updated, nil
}

func (s *CachingItemService) Delete(ctx context.Context, user domain.User, id int64) error {
	if err := s.next.Delete(ctx, user, id); err != nil {
		return err
	}
	s.logInvalidation(ctx, s.InvalidateItem(ctx, id))
	return nil
}

func (s *CachingItemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	err := s.cache.GetOrSet(ctx, itemKey(id), &item, func() (interface{}, error) {
		return s.next.GetByID(ctx, id)
	}, s.ttl)
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			return nil, derr
		}
		s.logger.WarnContext(ctx, "cache unavailable, reading through", "err", err)
		return s.next.GetByID(ctx, id)
	}
	return &item, nil
}

func (s *CachingItemService) List(ctx context.Context, filter domain.ItemFilter) (*domain.ItemPage, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	key, err := pageKey(filter)
	if err != nil {
		return s.next.List(ctx, filter)
	}

	var page domain.ItemPage
	err = s.cache.GetOrSet(ctx, key, &page, func() (interface{}, error) {
		return s.next.List(ctx, filter)
	}, s.ttl)
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			return nil, derr
		}
		s.logger.WarnContext(ctx, "cache unavailable, reading through", "err", err)
		return s.next.List(ctx, filter)
	}
	return &page, nil
}

// InvalidateItem drops one cached item and every cached page
func (s *CachingItemService) InvalidateItem(ctx context.Context, id int64) error {
	if err := s.cache.Delete(ctx, itemKey(id)); err != nil {
		return err
	}
	return s.cache.DeletePattern(ctx, itemPageKeyPrefix+":*")
}

func (s *CachingItemService) invalidatePages(ctx context.Context) {
	s.logInvalidation(ctx, s.cache.DeletePattern(ctx, itemPageKeyPrefix+":*"))
}

func (s *CachingItemService) logInvalidation(ctx context.Context, err error) {
	if err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate item cache", "err", err)
	}
}

func itemKey(id int64) string {
	return fmt.Sprintf("%s:%d", itemKeyPrefix, id)
}

func pageKey(f domain.ItemFilter) (string, error) {
	f.PageNum = f.Page()
	raw, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(raw)
	return itemPageKeyPrefix + ":" + hex.EncodeToString(sum[:]), nil
}
