//go:build integration
// +build integration

// internal/adapters/db/repository_integration_test.go
package db_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ammerola/roadie-bag/internal/adapters/db"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
	"github.com/ammerola/roadie-bag/internal/core/services"
	"github.com/ammerola/roadie-bag/test/helpers"
)

type BagRepositorySuite struct {
	suite.Suite
	testDB *helpers.TestDB
	items  ports.ItemRepository
	draws  ports.DrawRepository
	users  ports.UserRepository
	itemSv *services.ItemService
	drawSv *services.DrawService
	owner  domain.User
	ctx    context.Context
}

func (s *BagRepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	logger := helpers.TestLogger()

	s.items = db.NewItemRepository(s.testDB.Database, logger)
	s.draws = db.NewDrawRepository(s.testDB.Database, logger)
	s.users = db.NewUserRepository(s.testDB.Database, logger)
	s.itemSv = services.NewItemService(s.items, nil, logger)
	s.drawSv = services.NewDrawService(s.draws, services.NewSeededRandom(2024), nil, logger,
		services.WithMaxRetries(20))
	s.ctx = context.Background()
}

func (s *BagRepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.owner = helpers.SeedUser(s.T(), s.testDB.PgxPool, "roadie", "s3cret")
}

func (s *BagRepositorySuite) insert(item *domain.Item) *domain.Item {
	created, err := s.itemSv.Create(s.ctx, s.owner, item)
	s.Require().NoError(err)
	return created
}

func (s *BagRepositorySuite) TestInsertThenGet() {
	item := helpers.CreateTestItem(func(i *domain.Item) {
		i.Description = "black, 2 inch"
		i.Size = domain.SizeMedium
	})

	created := s.insert(item)
	s.NotZero(created.ID)

	got, err := s.items.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(created.Name, got.Name)
	s.Equal(created.Description, got.Description)
	s.Equal(created.Quantity, got.Quantity)
	s.Equal(created.Size, got.Size)
	s.Equal(created.Infinite, got.Infinite)
	s.Equal(s.owner, got.AddedBy)
	s.WithinDuration(created.CreatedAt, got.CreatedAt, time.Millisecond)
}

func (s *BagRepositorySuite) TestFindByID_Missing() {
	got, err := s.items.FindByID(s.ctx, 4040)
	s.NoError(err)
	s.Nil(got)

	exists, err := s.items.Exists(s.ctx, 4040)
	s.NoError(err)
	s.False(exists)
}

func (s *BagRepositorySuite) TestUpdateAndDelete() {
	created := s.insert(helpers.CreateTestItem())

	created.Name = "Duct Tape"
	created.Quantity = 0
	_, err := s.itemSv.Update(s.ctx, s.owner, created)
	s.Require().NoError(err)

	got, err := s.items.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Duct Tape", got.Name)
	s.Equal(0, got.Quantity)

	s.Require().NoError(s.itemSv.Delete(s.ctx, s.owner, created.ID))
	got, err = s.items.FindByID(s.ctx, created.ID)
	s.NoError(err)
	s.Nil(got)
}

func (s *BagRepositorySuite) TestPagination() {
	const n = 23
	for i := 0; i < n; i++ {
		s.insert(helpers.CreateTestItem(func(it *domain.Item) { it.Name = fmt.Sprintf("Case %02d", i) }))
	}

	for _, size := range []int{1, 5, 10, 23, 50} {
		seen := make(map[int64]bool)
		filter := domain.ItemFilter{PageSize: size, PageNum: 1}

		first, err := s.items.Filter(s.ctx, filter)
		s.Require().NoError(err)
		s.Equal(int64(n), first.TotalResults)
		s.Equal((n+size-1)/size, first.TotalPages)

		total := 0
		for page := 1; page <= first.TotalPages; page++ {
			got, err := s.items.Filter(s.ctx, filter.WithPage(page))
			s.Require().NoError(err)
			total += len(got.Items)
			for _, it := range got.Items {
				s.False(seen[it.ID], "item %d repeated with page size %d", it.ID, size)
				seen[it.ID] = true
			}
		}
		s.Equal(n, total, "page size %d", size)
	}

	// Past the last page is empty, not an error
	got, err := s.items.Filter(s.ctx, domain.ItemFilter{PageSize: 10, PageNum: 9})
	s.Require().NoError(err)
	s.Empty(got.Items)
	s.Equal(int64(n), got.TotalResults)
}

func (s *BagRepositorySuite) TestFilterByOwnerAndSize() {
	other := helpers.SeedUser(s.T(), s.testDB.PgxPool, "lighting", "pw")

	for i := 0; i < 10; i++ {
		s.insert(&domain.Item{Name: fmt.Sprintf("Small %d", i), Quantity: 1, Size: domain.SizeSmall})
		s.insert(&domain.Item{Name: fmt.Sprintf("Medium %d", i), Size: domain.SizeMedium, Infinite: true})
		_, err := s.itemSv.Create(s.ctx, other, &domain.Item{Name: fmt.Sprintf("Large %d", i), Quantity: 2, Size: domain.SizeLarge})
		s.Require().NoError(err)
	}

	byOwner, err := s.items.Filter(s.ctx, domain.ItemFilter{AddedBy: []int64{s.owner.ID}, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(int64(20), byOwner.TotalResults)
	s.Equal(2, byOwner.TotalPages)
	s.Len(byOwner.Items, 10)

	bySize, err := s.items.Filter(s.ctx, domain.ItemFilter{Sizes: []domain.ItemSize{domain.SizeLarge}, PageSize: domain.DefaultPageSize})
	s.Require().NoError(err)
	s.Equal(int64(10), bySize.TotalResults)
	s.Equal(1, bySize.TotalPages)

	infinite := true
	name := "medium"
	combined, err := s.items.Filter(s.ctx, domain.ItemFilter{Infinite: &infinite, Name: &name, PageSize: 50})
	s.Require().NoError(err)
	s.Equal(int64(0), combined.TotalResults, "name match is case sensitive")

	name = "Medium"
	combined, err = s.items.Filter(s.ctx, domain.ItemFilter{Infinite: &infinite, Name: &name, PageSize: 50})
	s.Require().NoError(err)
	s.Equal(int64(10), combined.TotalResults)
}

func (s *BagRepositorySuite) TestDrawSingleTent() {
	tent := s.insert(&domain.Item{Name: "Tent", Quantity: 1, Size: domain.SizeLarge})

	taken, err := s.drawSv.Draw(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Require().NotNil(taken)
	s.Equal(tent.ID, taken.ItemID)
	s.Equal("Tent", taken.Item.Name)
	s.GreaterOrEqual(taken.Rounds, domain.MinRounds)
	s.LessOrEqual(taken.Rounds, domain.MaxRounds)

	again, err := s.drawSv.Draw(s.ctx, s.owner)
	s.NoError(err)
	s.Nil(again)
}

func (s *BagRepositorySuite) TestDrawExhaustsFiniteItem() {
	rope := s.insert(&domain.Item{Name: "Rope", Quantity: 4, Size: domain.SizeMedium})

	for i := 0; i < 4; i++ {
		taken, err := s.drawSv.Draw(s.ctx, s.owner)
		s.Require().NoError(err)
		s.Require().NotNil(taken, "draw %d", i+1)
	}

	taken, err := s.drawSv.Draw(s.ctx, s.owner)
	s.NoError(err)
	s.Nil(taken)

	got, err := s.items.FindByID(s.ctx, rope.ID)
	s.Require().NoError(err)
	s.Equal(0, got.Quantity)

	history, err := s.drawSv.ForItem(s.ctx, rope.ID)
	s.Require().NoError(err)
	s.Len(history, 4)
	s.Greater(history[0].ID, history[3].ID, "history is newest first")
}

func (s *BagRepositorySuite) TestDrawInfiniteItem() {
	water := s.insert(&domain.Item{Name: "Water", Quantity: 2, Size: domain.SizeSmall, Infinite: true})

	for i := 0; i < 10; i++ {
		taken, err := s.drawSv.Draw(s.ctx, s.owner)
		s.Require().NoError(err)
		s.Require().NotNil(taken)
	}

	got, err := s.items.FindByID(s.ctx, water.ID)
	s.Require().NoError(err)
	s.Equal(2, got.Quantity)
	s.True(got.Infinite)
}

func (s *BagRepositorySuite) TestConcurrentDraws() {
	const q = 8
	crate := s.insert(&domain.Item{Name: "Crate", Quantity: q, Size: domain.SizeLarge})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []*domain.TakenItem
		errs    []error
	)
	for i := 0; i < q; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			taken, err := s.drawSv.Draw(context.Background(), s.owner)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			results = append(results, taken)
		}()
	}
	wg.Wait()

	s.Empty(errs)
	s.Len(results, q)
	for _, taken := range results {
		s.NotNil(taken)
	}

	got, err := s.items.FindByID(s.ctx, crate.ID)
	s.Require().NoError(err)
	s.Equal(0, got.Quantity)

	history, err := s.draws.ForItem(s.ctx, crate.ID)
	s.Require().NoError(err)
	s.Len(history, q)
}

func (s *BagRepositorySuite) TestLastTaken() {
	s.insert(&domain.Item{Name: "Lamp", Quantity: 3, Size: domain.SizeSmall})

	last, err := s.drawSv.Last(s.ctx)
	s.NoError(err)
	s.Nil(last)

	taken, err := s.drawSv.Draw(s.ctx, s.owner)
	s.Require().NoError(err)

	last, err = s.drawSv.Last(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(last)
	s.Equal(taken.ID, last.ID)
	s.False(last.Done)

	_, err = s.drawSv.MarkDone(s.ctx, s.owner, taken.ID)
	s.Require().NoError(err)

	last, err = s.drawSv.Last(s.ctx)
	s.NoError(err)
	s.Nil(last)

	next, err := s.drawSv.Draw(s.ctx, s.owner)
	s.Require().NoError(err)
	last, err = s.drawSv.Last(s.ctx)
	s.Require().NoError(err)
	s.Equal(next.ID, last.ID)
}

func (s *BagRepositorySuite) TestHistorySurvivesItemDelete() {
	lamp := s.insert(&domain.Item{Name: "Lamp", Quantity: 1, Size: domain.SizeSmall})

	taken, err := s.drawSv.Draw(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Require().NoError(s.itemSv.Delete(s.ctx, s.owner, lamp.ID))

	got, err := s.draws.FindTakenByID(s.ctx, taken.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(lamp.ID, got.ItemID)
	s.Nil(got.Item)

	all, err := s.draws.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *BagRepositorySuite) TestAnonymousWritesLeaveNoTrace() {
	guest := domain.Guest()

	_, err := s.itemSv.Create(s.ctx, guest, helpers.CreateTestItem())
	s.True(domain.IsKind(err, domain.KindUnauthorized))

	_, err = s.drawSv.Draw(s.ctx, guest)
	s.True(domain.IsKind(err, domain.KindUnauthorized))

	page, err := s.items.Filter(s.ctx, domain.ItemFilter{PageSize: 10})
	s.Require().NoError(err)
	s.Zero(page.TotalResults)
}

func (s *BagRepositorySuite) TestUsers() {
	rec, err := s.users.Create(s.ctx, "  Stage.Hand ", "hash")
	s.Require().NoError(err)
	s.Equal("stage.hand", rec.Username)

	found, err := s.users.FindByUsername(s.ctx, "STAGE.HAND")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(rec.ID, found.ID)

	_, err = s.users.Create(s.ctx, "stage.hand", "hash")
	s.True(domain.IsKind(err, domain.KindValidation))

	missing, err := s.users.FindByID(s.ctx, 999)
	s.NoError(err)
	s.Nil(missing)
}

func TestBagRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(BagRepositorySuite))
}
