// internal/adapters/db/item_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

var itemColumns = []string{
	"items.id", "items.added_by", "users.username",
	"items.name", "items.description", "items.quantity",
	"items.size", "items.infinite", "items.created_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// itemRepository implements ports.ItemRepository
type itemRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *Database, logger *slog.Logger) ports.ItemRepository {
	return &itemRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "items")),
	}
}

// Insert stores a new item; any id on the input is ignored
func (r *itemRepository) Insert(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query, args, err := squirrel.Insert("items").
		Columns("added_by", "name", "description", "quantity", "size", "infinite", "created_at").
		Values(item.AddedBy.ID, item.Name, item.Description, item.Quantity,
			item.Size.Code(), item.Infinite, item.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	stored := *item
	if err := r.db.QueryRow(ctx, query, args...).Scan(&stored.ID); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, fmt.Errorf("item owner %d does not exist: %w", item.AddedBy.ID, err)
		}
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	r.logger.DebugContext(ctx, "item inserted",
		slog.Int64("id", stored.ID),
		slog.Int64("added_by", stored.AddedBy.ID),
	)

	return &stored, nil
}

// Update overwrites the mutable fields of an item
func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query, args, err := squirrel.Update("items").
		SetMap(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"quantity":    item.Quantity,
			"size":        item.Size.Code(),
			"infinite":    item.Infinite,
		}).
		Where(squirrel.Eq{"id": item.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, err)
	}
	return nil
}

// Delete removes an item; draw history is left in place
func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := squirrel.Delete("items").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}

// FindByID returns the item joined with its owner, or nil when absent
func (r *itemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	query, args, err := selectItems().
		Where(squirrel.Eq{"items.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	item, err := ScanOne(r.db.QueryRow(ctx, query, args...), scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return item, nil
}

// Exists checks if an item exists
func (r *itemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := Exists(ctx, r.db, "SELECT 1 FROM items WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return exists, nil
}

// Filter returns one page of items matching the filter, newest first
func (r *itemRepository) Filter(ctx context.Context, filter domain.ItemFilter) (*domain.ItemPage, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	countSQL, countArgs, err := buildCountQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	pageSQL, pageArgs, err := buildPageQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build page query: %w", err)
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	items, err := ScanMany(rows, func(rows pgx.Rows) (*domain.Item, error) {
		return scanItem(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}

	r.logger.DebugContext(ctx, "items filtered",
		slog.Int64("total", total),
		slog.Int("page", filter.Page()),
		slog.Int("returned", len(items)),
	)

	return &domain.ItemPage{
		Items:        items,
		PageNum:      filter.Page(),
		PageSize:     filter.PageSize,
		TotalPages:   domain.TotalPages(total, filter.PageSize),
		TotalResults: total,
	}, nil
}

func selectItems() squirrel.SelectBuilder {
	return squirrel.Select(itemColumns...).
		From("items").
		Join("users ON users.id = items.added_by").
		PlaceholderFormat(squirrel.Dollar)
}

// applyItemFilter ANDs one predicate per populated filter field
func applyItemFilter(qb squirrel.SelectBuilder, f domain.ItemFilter) squirrel.SelectBuilder {
	if len(f.AddedBy) > 0 {
		qb = qb.Where(squirrel.Eq{"items.added_by": f.AddedBy})
	}
	if f.Name != nil {
		qb = qb.Where(squirrel.Like{"items.name": containsPattern(*f.Name)})
	}
	if f.Description != nil {
		qb = qb.Where(squirrel.Like{"items.description": containsPattern(*f.Description)})
	}
	if len(f.Sizes) > 0 {
		codes := make([]int, 0, len(f.Sizes))
		for _, s := range f.Sizes {
			codes = append(codes, s.Code())
		}
		qb = qb.Where(squirrel.Eq{"items.size": codes})
	}
	if f.Infinite != nil {
		qb = qb.Where(squirrel.Eq{"items.infinite": *f.Infinite})
	}
	return qb
}

func buildCountQuery(f domain.ItemFilter) (string, []interface{}, error) {
	qb := squirrel.Select("COUNT(*)").
		From("items").
		Join("users ON users.id = items.added_by").
		PlaceholderFormat(squirrel.Dollar)
	return applyItemFilter(qb, f).ToSql()
}

func buildPageQuery(f domain.ItemFilter) (string, []interface{}, error) {
	return applyItemFilter(selectItems(), f).
		OrderBy("items.id DESC").
		Limit(uint64(f.PageSize)).
		Offset(f.Offset()).
		ToSql()
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	item := &domain.Item{}
	var size int16
	err := row.Scan(
		&item.ID, &item.AddedBy.ID, &item.AddedBy.Username,
		&item.Name, &item.Description, &item.Quantity,
		&size, &item.Infinite, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Size = domain.ItemSizeFromCode(int(size))
	return item, nil
}
