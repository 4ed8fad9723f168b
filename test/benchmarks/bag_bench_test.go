// test/benchmarks/bag_bench_test.go
package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/ammerola/roadie-bag/internal/adapters/packinglist"
	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/workers"
	"github.com/ammerola/roadie-bag/test/helpers"
)

func BenchmarkBuildWorkbook(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		items := createBenchmarkItems(size)
		history := createBenchmarkHistory(items)
		counts := make(map[int64]int64, len(items))
		for _, t := range history {
			counts[t.ItemID]++
		}

		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := workers.BuildWorkbook(items, history, counts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSizeClassification(b *testing.B) {
	classifier := packinglist.NewSizeClassifier()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		classifier.Classify(gearDescriptions[i%len(gearDescriptions)])
	}
}

func BenchmarkReadPackingList(b *testing.B) {
	reader := packinglist.NewReader(helpers.TestLogger())
	ctx := context.Background()

	for _, size := range []int{10, 100, 1000} {
		path := writePackingList(b, size)

		b.Run(fmt.Sprintf("Rows_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				entries, err := reader.Read(ctx, path)
				if err != nil {
					b.Fatal(err)
				}
				if len(entries) != size {
					b.Fatalf("expected %d entries, got %d", size, len(entries))
				}
			}
		})
	}
}

func BenchmarkFilterValidation(b *testing.B) {
	name := "cable"
	infinite := false
	filter := domain.ItemFilter{
		AddedBy:  []int64{1, 2, 3},
		Name:     &name,
		Sizes:    []domain.ItemSize{domain.SizeSmall, domain.SizeMedium},
		Infinite: &infinite,
		PageSize: 20,
		PageNum:  4,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := filter.Validate(); err != nil {
			b.Fatal(err)
		}
		_ = filter.WithPage(i%10 + 1).Offset()
	}
}
