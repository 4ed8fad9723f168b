// cmd/seeder/seeder.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/ammerola/roadie-bag/internal/adapters/packinglist"
	"github.com/ammerola/roadie-bag/internal/auth"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// entryReader is the part of *packinglist.Reader the seeder uses
type entryReader interface {
	Read(ctx context.Context, path string) ([]packinglist.Entry, error)
}

// seedState records which packing lists already made it into the bag
type seedState struct {
	ProcessedLists []string  `json:"processed_lists"`
	ItemsCreated   int       `json:"items_created"`
	LastUpdate     time.Time `json:"last_update"`
}

func loadState(path string) (*seedState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &seedState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state seedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &state, nil
}

func (s *seedState) save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *seedState) processed(name string) bool {
	return slices.Contains(s.ProcessedLists, name)
}

// seedSummary is what one run did
type seedSummary struct {
	Lists   map[string]int
	Skipped []string
	Failed  map[string]string
	Items   int
}

type seeder struct {
	reader     entryReader
	users      ports.UserRepository
	items      ports.ItemService
	clock      ports.Clock
	bcryptCost int
	dryRun     bool
	force      bool
	logger     *slog.Logger
}

// ensureUser returns the owner of seeded items, creating the account if needed
func (s *seeder) ensureUser(ctx context.Context, username, password string) (domain.User, error) {
	rec, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	if rec != nil {
		return rec.User(), nil
	}

	if s.dryRun {
		return domain.User{ID: 0, Username: username}, nil
	}
	if password == "" {
		return domain.User{}, fmt.Errorf("user %q does not exist and no password was given", username)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return domain.User{}, err
	}
	rec, err = s.users.Create(ctx, username, hash)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.InfoContext(ctx, "seed user created", slog.String("username", rec.Username))
	return rec.User(), nil
}

// run loads every list not yet recorded in state and stores its entries
func (s *seeder) run(ctx context.Context, owner domain.User, files []string, state *seedState) *seedSummary {
	summary := &seedSummary{
		Lists:  make(map[string]int),
		Failed: make(map[string]string),
	}

	for i, file := range files {
		name := filepath.Base(file)
		log := s.logger.With(slog.String("list", name))
		fmt.Printf("PROGRESS: Processing %d/%d: %s\n", i+1, len(files), name)

		if !s.force && state.processed(name) {
			log.InfoContext(ctx, "skipping already seeded list")
			summary.Skipped = append(summary.Skipped, name)
			continue
		}

		entries, err := s.reader.Read(ctx, file)
		if err != nil {
			log.ErrorContext(ctx, "failed to read packing list", "err", err)
			summary.Failed[name] = err.Error()
			continue
		}
		if len(entries) == 0 {
			log.WarnContext(ctx, "no items found")
			summary.Failed[name] = "no items found"
			continue
		}

		created := 0
		for _, entry := range entries {
			if s.dryRun {
				created++
				continue
			}
			if _, err := s.items.Create(ctx, owner, entry.Item()); err != nil {
				log.ErrorContext(ctx, "failed to create item",
					slog.String("item", entry.Name), "err", err)
				continue
			}
			created++
		}

		summary.Lists[name] = created
		summary.Items += created

		if !s.dryRun && !state.processed(name) {
			state.ProcessedLists = append(state.ProcessedLists, name)
		}
		state.ItemsCreated += created
		state.LastUpdate = s.clock.Now()
	}

	return summary
}
