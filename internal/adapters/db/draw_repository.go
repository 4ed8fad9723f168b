// internal/adapters/db/draw_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// eligible is the draw predicate; quantity is the only count of remaining units
var eligible = squirrel.Or{
	squirrel.Eq{"items.infinite": true},
	squirrel.GtOrEq{"items.quantity": 1},
}

var takenColumns = []string{
	"taken_items.id", "taken_items.item_id", "taken_items.extraction_time",
	"taken_items.rounds", "taken_items.done",
	"items.id", "items.added_by", "users.username",
	"items.name", "items.description", "items.quantity",
	"items.size", "items.infinite", "items.created_at",
}

// drawRepository implements ports.DrawRepository
type drawRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewDrawRepository creates a new draw history repository
func NewDrawRepository(db *Database, logger *slog.Logger) ports.DrawRepository {
	return &drawRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "draws")),
	}
}

// RunInTx runs fn inside one read-committed transaction
func (r *drawRepository) RunInTx(ctx context.Context, fn func(tx ports.DrawTx) error) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(&drawTx{q: tx})
	})
}

// UpdateTaken overwrites a draw record by id
func (r *drawRepository) UpdateTaken(ctx context.Context, taken *domain.TakenItem) error {
	query, args, err := squirrel.Update("taken_items").
		SetMap(map[string]interface{}{
			"item_id":         taken.ItemID,
			"extraction_time": taken.ExtractionTime,
			"rounds":          taken.Rounds,
			"done":            taken.Done,
		}).
		Where(squirrel.Eq{"id": taken.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update taken item %d: %w", taken.ID, err)
	}

	r.logger.DebugContext(ctx, "taken item updated",
		slog.Int64("id", taken.ID),
		slog.Bool("done", taken.Done),
	)
	return nil
}

// FindTakenByID returns one draw record with its item, or nil when absent
func (r *drawRepository) FindTakenByID(ctx context.Context, id int64) (*domain.TakenItem, error) {
	return findTaken(ctx, r.db, squirrel.Eq{"taken_items.id": id})
}

// Last returns the newest draw record, or nil when there is none
func (r *drawRepository) Last(ctx context.Context) (*domain.TakenItem, error) {
	query, args, err := selectTaken().
		OrderBy("taken_items.id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build last query: %w", err)
	}

	taken, err := ScanOne(r.db.QueryRow(ctx, query, args...), scanTaken)
	if err != nil {
		return nil, fmt.Errorf("failed to get last taken item: %w", err)
	}
	return taken, nil
}

// ForItem returns every draw of one item, newest first
func (r *drawRepository) ForItem(ctx context.Context, itemID int64) ([]*domain.TakenItem, error) {
	return r.list(ctx, squirrel.Eq{"taken_items.item_id": itemID})
}

// ListAll returns the whole draw history, newest first
func (r *drawRepository) ListAll(ctx context.Context) ([]*domain.TakenItem, error) {
	return r.list(ctx, nil)
}

func (r *drawRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.TakenItem, error) {
	qb := selectTaken().OrderBy("taken_items.id DESC")
	if where != nil {
		qb = qb.Where(where)
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw history: %w", err)
	}

	history, err := ScanMany(rows, func(rows pgx.Rows) (*domain.TakenItem, error) {
		return scanTaken(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan draw history: %w", err)
	}
	return history, nil
}

// drawTx implements ports.DrawTx on an open transaction
type drawTx struct {
	q querier
}

// CountEligible counts the items a draw may pick
func (t *drawTx) CountEligible(ctx context.Context) (int64, error) {
	query, args, err := squirrel.Select("COUNT(*)").
		From("items").
		Where(eligible).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build eligible count query: %w", err)
	}

	var n int64
	if err := t.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count eligible items: %w", err)
	}
	return n, nil
}

// LockEligibleAt picks the eligible item at offset in id-descending order and
// row-locks only that item. The pick itself takes no locks; if a concurrent
// draw emptied or removed the row before the lock, ok is false and the caller
// retries.
func (t *drawTx) LockEligibleAt(ctx context.Context, offset int64) (int64, bool, error) {
	query, args, err := buildEligibleAtQuery(offset)
	if err != nil {
		return 0, false, fmt.Errorf("failed to build pick query: %w", err)
	}

	var id int64
	if err := t.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to pick eligible item: %w", err)
	}

	query, args, err = buildLockEligibleQuery(id)
	if err != nil {
		return 0, false, fmt.Errorf("failed to build lock query: %w", err)
	}

	var locked int64
	if err := t.q.QueryRow(ctx, query, args...).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to lock item %d: %w", id, err)
	}
	return locked, true, nil
}

func buildEligibleAtQuery(offset int64) (string, []interface{}, error) {
	return squirrel.Select("items.id").
		From("items").
		Where(eligible).
		OrderBy("items.id DESC").
		Limit(1).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// buildLockEligibleQuery re-checks eligibility under the row lock
func buildLockEligibleQuery(id int64) (string, []interface{}, error) {
	return squirrel.Select("items.id").
		From("items").
		Where(squirrel.Eq{"items.id": id}).
		Where(eligible).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// FindItem reads an item inside the transaction
func (t *drawTx) FindItem(ctx context.Context, id int64) (*domain.Item, error) {
	query, args, err := selectItems().
		Where(squirrel.Eq{"items.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	item, err := ScanOne(t.q.QueryRow(ctx, query, args...), scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return item, nil
}

// DecrementQuantity takes one unit from a finite item that still has one
func (t *drawTx) DecrementQuantity(ctx context.Context, id int64) (bool, error) {
	query, args, err := squirrel.Update("items").
		Set("quantity", squirrel.Expr("quantity - 1")).
		Where(squirrel.Eq{"id": id, "infinite": false}).
		Where(squirrel.GtOrEq{"quantity": 1}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build decrement query: %w", err)
	}

	tag, err := t.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to decrement item %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertTaken records a draw
func (t *drawTx) InsertTaken(ctx context.Context, taken *domain.TakenItem) (*domain.TakenItem, error) {
	query, args, err := squirrel.Insert("taken_items").
		Columns("item_id", "extraction_time", "rounds", "done").
		Values(taken.ItemID, taken.ExtractionTime, taken.Rounds, taken.Done).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	stored := *taken
	if err := t.q.QueryRow(ctx, query, args...).Scan(&stored.ID); err != nil {
		return nil, fmt.Errorf("failed to insert taken item: %w", err)
	}
	return &stored, nil
}

// selectTaken left-joins items so history survives a deleted item
func selectTaken() squirrel.SelectBuilder {
	return squirrel.Select(takenColumns...).
		From("taken_items").
		LeftJoin("items ON items.id = taken_items.item_id").
		LeftJoin("users ON users.id = items.added_by").
		PlaceholderFormat(squirrel.Dollar)
}

func findTaken(ctx context.Context, q querier, where squirrel.Sqlizer) (*domain.TakenItem, error) {
	query, args, err := selectTaken().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build taken query: %w", err)
	}

	taken, err := ScanOne(q.QueryRow(ctx, query, args...), scanTaken)
	if err != nil {
		return nil, fmt.Errorf("failed to get taken item: %w", err)
	}
	return taken, nil
}

func scanTaken(row pgx.Row) (*domain.TakenItem, error) {
	taken := &domain.TakenItem{}
	var rounds int16
	var (
		itemID, addedBy, quantity *int64
		username, name, desc      *string
		size                      *int16
		infinite                  *bool
		createdAt                 *time.Time
	)
	err := row.Scan(
		&taken.ID, &taken.ItemID, &taken.ExtractionTime, &rounds, &taken.Done,
		&itemID, &addedBy, &username, &name, &desc, &quantity, &size, &infinite, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	taken.Rounds = int(rounds)

	if itemID != nil {
		item := &domain.Item{
			ID:       *itemID,
			Size:     domain.ItemSizeFromCode(int(deref(size))),
			Quantity: int(deref(quantity)),
			Infinite: deref(infinite),
		}
		item.AddedBy.ID = deref(addedBy)
		item.AddedBy.Username = deref(username)
		item.Name = deref(name)
		item.Description = deref(desc)
		if createdAt != nil {
			item.CreatedAt = *createdAt
		}
		taken.Item = item
	}
	return taken, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
