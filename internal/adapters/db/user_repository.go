// internal/adapters/db/user_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// userRepository implements ports.UserRepository
type userRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewUserRepository creates a new account repository
func NewUserRepository(db *Database, logger *slog.Logger) ports.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "users")),
	}
}

// Create stores an account under the normalized username
func (r *userRepository) Create(ctx context.Context, username, passwordHash string) (*domain.UserRecord, error) {
	query, args, err := squirrel.Insert("users").
		Columns("username", "password_hash").
		Values(domain.NormalizeUsername(username), passwordHash).
		Suffix("RETURNING id, username, password_hash, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rec, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, domain.FieldValidation("username", "Username is already taken")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.InfoContext(ctx, "user created", slog.Int64("user_id", rec.ID))
	return rec, nil
}

// FindByUsername looks an account up case-insensitively
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.UserRecord, error) {
	return r.findOne(ctx, squirrel.Eq{"lower(username)": domain.NormalizeUsername(username)})
}

// FindByID returns an account or nil when absent
func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.UserRecord, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

func (r *userRepository) findOne(ctx context.Context, where squirrel.Sqlizer) (*domain.UserRecord, error) {
	query, args, err := squirrel.Select("id", "username", "password_hash", "created_at").
		From("users").
		Where(where).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	rec, err := ScanOne(r.db.QueryRow(ctx, query, args...), scanUser)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return rec, nil
}

func scanUser(row pgx.Row) (*domain.UserRecord, error) {
	rec := &domain.UserRecord{}
	if err := row.Scan(&rec.ID, &rec.Username, &rec.PasswordHash, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}
