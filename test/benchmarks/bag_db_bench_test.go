//go:build integration
// +build integration

// test/benchmarks/bag_db_bench_test.go
package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/ammerola/roadie-bag/internal/adapters/db"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/services"
	"github.com/ammerola/roadie-bag/test/helpers"
)

func BenchmarkBagOperations(b *testing.B) {
	testDB := helpers.SetupTestDB(b)
	logger := helpers.TestLogger()
	ctx := context.Background()

	owner := helpers.SeedUser(b, testDB.PgxPool, "bench", "amp-stack")
	clock := services.SystemClock()
	items := services.NewItemService(db.NewItemRepository(testDB.Database, logger), clock, logger)
	draws := services.NewDrawService(db.NewDrawRepository(testDB.Database, logger),
		services.SystemRandom(), clock, logger, services.WithMaxRetries(20))

	b.Run("Create", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			item := helpers.CreateTestItem(func(item *domain.Item) {
				item.ID = 0
				item.Name = fmt.Sprintf("Benchmark Item %d", i)
			})
			if _, err := items.Create(ctx, owner, item); err != nil {
				b.Fatal(err)
			}
		}
	})

	// Pre-create items for read benchmarks
	var ids []int64
	for _, item := range createBenchmarkItems(100) {
		item.ID = 0
		created, err := items.Create(ctx, owner, item)
		if err != nil {
			b.Fatal(err)
		}
		ids = append(ids, created.ID)
	}

	b.Run("GetByID", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := items.GetByID(ctx, ids[i%len(ids)]); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("List", func(b *testing.B) {
		filter := domain.ItemFilter{PageSize: 50, PageNum: 1}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := items.List(ctx, filter); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("ListFiltered", func(b *testing.B) {
		name := "Item"
		filter := domain.ItemFilter{
			AddedBy:  []int64{owner.ID},
			Name:     &name,
			Sizes:    []domain.ItemSize{domain.SizeSmall, domain.SizeLarge},
			PageSize: 20,
			PageNum:  2,
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := items.List(ctx, filter); err != nil {
				b.Fatal(err)
			}
		}
	})

	// Infinite supply so the bag never runs dry mid-benchmark
	if _, err := items.Create(ctx, owner, &domain.Item{Name: "Guitar pick", Size: domain.SizeSmall, Infinite: true}); err != nil {
		b.Fatal(err)
	}

	b.Run("Draw", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := draws.Draw(ctx, owner); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("DrawParallel", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if _, err := draws.Draw(ctx, owner); err != nil {
					b.Error(err)
					return
				}
			}
		})
	})
}
