// internal/core/services/draw.go
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// DefaultDrawRetries bounds how often a draw re-picks after losing a row to a concurrent draw
const DefaultDrawRetries = 5

// DrawService picks items out of the bag and manages draw history
type DrawService struct {
	repo        ports.DrawRepository
	rng         ports.RandomSource
	clock       ports.Clock
	queue       ports.TaskQueue
	invalidator ports.ItemInvalidator
	maxRetries  int
	logger      *slog.Logger
}

var _ ports.DrawService = (*DrawService)(nil)

// DrawOption configures optional DrawService collaborators
type DrawOption func(*DrawService)

// WithTaskQueue makes every committed draw enqueue a notification
func WithTaskQueue(q ports.TaskQueue) DrawOption {
	return func(s *DrawService) { s.queue = q }
}

// WithItemInvalidator drops cached copies of a drawn item after commit
func WithItemInvalidator(inv ports.ItemInvalidator) DrawOption {
	return func(s *DrawService) { s.invalidator = inv }
}

// WithMaxRetries overrides DefaultDrawRetries
func WithMaxRetries(n int) DrawOption {
	return func(s *DrawService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// NewDrawService creates a new draw service
func NewDrawService(repo ports.DrawRepository, rng ports.RandomSource, clock ports.Clock, logger *slog.Logger, opts ...DrawOption) *DrawService {
	if rng == nil {
		rng = SystemRandom()
	}
	if clock == nil {
		clock = SystemClock()
	}
	s := &DrawService{
		repo:       repo,
		rng:        rng,
		clock:      clock,
		maxRetries: DefaultDrawRetries,
		logger:     logger.With(slog.String("service", "draws")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Draw takes one uniformly chosen eligible item out of the bag.
// It returns nil, nil when nothing is eligible.
func (s *DrawService) Draw(ctx context.Context, user domain.User) (*domain.TakenItem, error) {
	if user.IsAnonymous() {
		return nil, domain.ErrUnauthorized()
	}

	var taken *domain.TakenItem
	err := s.repo.RunInTx(ctx, func(tx ports.DrawTx) error {
		var err error
		taken, err = s.drawInTx(ctx, tx)
		return err
	})
	if err != nil {
		return nil, storageErr("draw", err)
	}
	if taken == nil {
		s.logger.InfoContext(ctx, "draw found no eligible item", slog.Int64("user_id", user.ID))
		return nil, nil
	}

	s.logger.InfoContext(ctx, "item drawn",
		slog.Int64("taken_id", taken.ID),
		slog.Int64("item_id", taken.ItemID),
		slog.Int("rounds", taken.Rounds),
		slog.Int64("user_id", user.ID))

	s.afterDraw(ctx, taken)
	return taken, nil
}

func (s *DrawService) drawInTx(ctx context.Context, tx ports.DrawTx) (*domain.TakenItem, error) {
	var itemID int64
	for attempt := 0; ; attempt++ {
		n, err := tx.CountEligible(ctx)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}

		id, ok, err := tx.LockEligibleAt(ctx, int64(s.rng.IntN(int(n))))
		if err != nil {
			return nil, err
		}
		if ok {
			itemID = id
			break
		}
		if attempt+1 >= s.maxRetries {
			return nil, domain.Storage("draw", errDrawContention)
		}
		s.logger.DebugContext(ctx, "eligible row vanished, retrying", slog.Int("attempt", attempt+1))
	}

	item, err := tx.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.InvariantViolation("locked item disappeared inside the draw transaction")
	}

	if !item.Infinite {
		ok, err := tx.DecrementQuantity(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.InvariantViolation("eligible finite item had no unit left")
		}
		item.Quantity--
	}

	taken, err := tx.InsertTaken(ctx, &domain.TakenItem{
		ItemID:         item.ID,
		ExtractionTime: s.clock.Now(),
		Rounds:         domain.MinRounds + s.rng.IntN(domain.MaxRounds-domain.MinRounds+1),
		Done:           false,
	})
	if err != nil {
		return nil, err
	}
	taken.Item = item
	return taken, nil
}

// afterDraw runs post-commit side effects; their failures never undo the draw
func (s *DrawService) afterDraw(ctx context.Context, taken *domain.TakenItem) {
	if s.invalidator != nil {
		if err := s.invalidator.InvalidateItem(ctx, taken.ItemID); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate drawn item", "err", err)
		}
	}
	if s.queue != nil {
		if err := s.queue.EnqueueDrawRecorded(ctx, taken); err != nil {
			s.logger.WarnContext(ctx, "failed to enqueue draw notification", "err", err)
		}
	}
}

// MarkDone flags a draw as played
func (s *DrawService) MarkDone(ctx context.Context, user domain.User, takenID int64) (*domain.TakenItem, error) {
	if user.IsAnonymous() {
		return nil, domain.ErrUnauthorized()
	}

	taken, err := s.repo.FindTakenByID(ctx, takenID)
	if err != nil {
		return nil, storageErr("get taken item", err)
	}
	if taken == nil {
		return nil, domain.NotFound("taken item", takenID)
	}

	taken.Done = true
	if err := s.repo.UpdateTaken(ctx, taken); err != nil {
		return nil, storageErr("update taken item", err)
	}

	s.logger.InfoContext(ctx, "draw marked done",
		slog.Int64("taken_id", takenID),
		slog.Int64("user_id", user.ID))
	return taken, nil
}

// UpdateTaken overwrites a draw record by id
func (s *DrawService) UpdateTaken(ctx context.Context, user domain.User, taken *domain.TakenItem) (*domain.TakenItem, error) {
	if user.IsAnonymous() {
		return nil, domain.ErrUnauthorized()
	}
	if err := taken.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindTakenByID(ctx, taken.ID)
	if err != nil {
		return nil, storageErr("get taken item", err)
	}
	if existing == nil {
		return nil, domain.NotFound("taken item", taken.ID)
	}

	if err := s.repo.UpdateTaken(ctx, taken); err != nil {
		return nil, storageErr("update taken item", err)
	}

	updated := *taken
	if updated.ItemID == existing.ItemID {
		updated.Item = existing.Item
	} else {
		updated.Item = nil
	}
	return &updated, nil
}

// Last returns the newest draw while it is still in play
func (s *DrawService) Last(ctx context.Context) (*domain.TakenItem, error) {
	taken, err := s.repo.Last(ctx)
	if err != nil {
		return nil, storageErr("get last draw", err)
	}
	if taken == nil || taken.Done {
		return nil, nil
	}
	return taken, nil
}

// ForItem returns an item's draw history, newest first
func (s *DrawService) ForItem(ctx context.Context, itemID int64) ([]*domain.TakenItem, error) {
	history, err := s.repo.ForItem(ctx, itemID)
	if err != nil {
		return nil, storageErr("get draw history", err)
	}
	return history, nil
}

var errDrawContention = errors.New("eligible item was taken concurrently on every attempt")
