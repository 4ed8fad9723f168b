// cmd/seeder/seeder_test.go
package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/roadie-bag/internal/adapters/packinglist"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/services"
	"github.com/ammerola/roadie-bag/test/helpers"
	"github.com/ammerola/roadie-bag/test/mocks"
)

type fakeReader map[string][]packinglist.Entry

func (f fakeReader) Read(_ context.Context, path string) ([]packinglist.Entry, error) {
	entries, ok := f[filepath.Base(path)]
	if !ok {
		return nil, errors.New("unsupported packing list format: .txt")
	}
	return entries, nil
}

var seededAt = time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)

func newSeeder(t *testing.T, reader entryReader) (*seeder, *mocks.MockUserRepository, *mocks.MockItemService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	items := mocks.NewMockItemService(ctrl)
	return &seeder{
		reader:     reader,
		users:      users,
		items:      items,
		clock:      services.NewFixedClock(seededAt),
		bcryptCost: 4,
		logger:     helpers.TestLogger(),
	}, users, items
}

func TestSeeder_EnsureUser(t *testing.T) {
	ctx := context.Background()
	existing := &domain.UserRecord{ID: 4, Username: "roadie"}

	t.Run("existing_account", func(t *testing.T) {
		s, users, _ := newSeeder(t, fakeReader{})
		users.EXPECT().FindByUsername(ctx, "roadie").Return(existing, nil)

		owner, err := s.ensureUser(ctx, "roadie", "")
		require.NoError(t, err)
		assert.Equal(t, domain.User{ID: 4, Username: "roadie"}, owner)
	})

	t.Run("creates_missing_account", func(t *testing.T) {
		s, users, _ := newSeeder(t, fakeReader{})
		users.EXPECT().FindByUsername(ctx, "roadie").Return(nil, nil)
		users.EXPECT().Create(ctx, "roadie", gomock.Any()).
			DoAndReturn(func(_ context.Context, name, hash string) (*domain.UserRecord, error) {
				assert.NotEqual(t, "amp-stack", hash)
				return &domain.UserRecord{ID: 9, Username: name, PasswordHash: hash}, nil
			})

		owner, err := s.ensureUser(ctx, "roadie", "amp-stack")
		require.NoError(t, err)
		assert.Equal(t, int64(9), owner.ID)
	})

	t.Run("missing_account_without_password", func(t *testing.T) {
		s, users, _ := newSeeder(t, fakeReader{})
		users.EXPECT().FindByUsername(ctx, "roadie").Return(nil, nil)

		_, err := s.ensureUser(ctx, "roadie", "")
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("lookup_fails", func(t *testing.T) {
		s, users, _ := newSeeder(t, fakeReader{})
		users.EXPECT().FindByUsername(ctx, "roadie").Return(nil, errors.New("connection refused"))

		_, err := s.ensureUser(ctx, "roadie", "amp-stack")
		assert.EqualError(t, err, "connection refused")
	})
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	owner := helpers.TestUser()
	reader := fakeReader{
		"stage.xlsx": {
			{Name: "Tent", Quantity: 1, Size: domain.SizeLarge},
			{Name: "Gaffer tape", Size: domain.SizeSmall, Infinite: true},
		},
		"empty.pdf": {},
	}

	t.Run("loads_new_lists", func(t *testing.T) {
		s, _, items := newSeeder(t, reader)
		items.EXPECT().Create(ctx, owner, gomock.Any()).Return(&domain.Item{}, nil).Times(2)

		state := &seedState{}
		summary := s.run(ctx, owner, []string{"lists/stage.xlsx", "lists/empty.pdf", "lists/notes.txt"}, state)

		assert.Equal(t, map[string]int{"stage.xlsx": 2}, summary.Lists)
		assert.Equal(t, 2, summary.Items)
		assert.Equal(t, "no items found", summary.Failed["empty.pdf"])
		assert.Contains(t, summary.Failed, "notes.txt")
		assert.Equal(t, []string{"stage.xlsx"}, state.ProcessedLists)
		assert.Equal(t, seededAt, state.LastUpdate)
	})

	t.Run("skips_seeded_lists", func(t *testing.T) {
		s, _, _ := newSeeder(t, reader)

		state := &seedState{ProcessedLists: []string{"stage.xlsx"}}
		summary := s.run(ctx, owner, []string{"lists/stage.xlsx"}, state)

		assert.Equal(t, []string{"stage.xlsx"}, summary.Skipped)
		assert.Zero(t, summary.Items)
	})

	t.Run("force_reloads", func(t *testing.T) {
		s, _, items := newSeeder(t, reader)
		s.force = true
		items.EXPECT().Create(ctx, owner, gomock.Any()).Return(&domain.Item{}, nil).Times(2)

		state := &seedState{ProcessedLists: []string{"stage.xlsx"}}
		summary := s.run(ctx, owner, []string{"lists/stage.xlsx"}, state)

		assert.Equal(t, 2, summary.Items)
		assert.Equal(t, []string{"stage.xlsx"}, state.ProcessedLists)
	})

	t.Run("dry_run_writes_nothing", func(t *testing.T) {
		s, _, _ := newSeeder(t, reader)
		s.dryRun = true

		state := &seedState{}
		summary := s.run(ctx, owner, []string{"lists/stage.xlsx"}, state)

		assert.Equal(t, 2, summary.Items)
		assert.Empty(t, state.ProcessedLists)
	})

	t.Run("failed_item_is_not_counted", func(t *testing.T) {
		s, _, items := newSeeder(t, reader)
		gomock.InOrder(
			items.EXPECT().Create(ctx, owner, gomock.Any()).Return(nil, domain.FieldValidation("name", "Name can't be empty")),
			items.EXPECT().Create(ctx, owner, gomock.Any()).Return(&domain.Item{}, nil),
		)

		summary := s.run(ctx, owner, []string{"lists/stage.xlsx"}, &seedState{})
		assert.Equal(t, 1, summary.Lists["stage.xlsx"])
	})
}

func TestSeedState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	fresh, err := loadState(path)
	require.NoError(t, err)
	assert.Empty(t, fresh.ProcessedLists)

	fresh.ProcessedLists = []string{"stage.xlsx"}
	fresh.ItemsCreated = 2
	fresh.LastUpdate = seededAt
	require.NoError(t, fresh.save(path))

	loaded, err := loadState(path)
	require.NoError(t, err)
	assert.Equal(t, fresh, loaded)
}

func TestPackingLists(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.pdf", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err := packingLists(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.xlsx")}, files)
}
