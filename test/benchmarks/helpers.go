// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/test/helpers"
)

var gearDescriptions = []string{
	"Fender twin reverb amplifier with road case",
	"XLR microphone cable 10m",
	"Medium gauge guitar picks, bulk",
	"Boom microphone stand",
	"9V batteries for pedals",
	"Gaffer tape, black, 2 inch",
	"Power strip with surge protection",
	"Floor monitor wedge",
	"Spare drumsticks 5A",
	"Keyboard stand, double tier",
}

// createBenchmarkItems builds count items cycling through the gear list
func createBenchmarkItems(count int) []*domain.Item {
	items := helpers.CreateTestItems(count)
	for i, item := range items {
		item.Description = gearDescriptions[i%len(gearDescriptions)]
		item.Infinite = i%7 == 0
	}
	return items
}

// createBenchmarkHistory draws every third item once
func createBenchmarkHistory(items []*domain.Item) []*domain.TakenItem {
	start := time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC)
	history := make([]*domain.TakenItem, 0, len(items)/3+1)
	for i := 0; i < len(items); i += 3 {
		history = append(history, helpers.CreateTestTaken(items[i], func(t *domain.TakenItem) {
			t.ID = int64(len(history) + 1)
			t.ExtractionTime = start.Add(time.Duration(i) * time.Minute)
			t.Rounds = i%6 + 1
			t.Done = i%2 == 0
		}))
	}
	return history
}

// writePackingList saves an xlsx packing list of count rows and returns its path
func writePackingList(b *testing.B, count int) string {
	b.Helper()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Packing List")
	if err != nil {
		b.Fatal(err)
	}

	header := sheet.AddRow()
	for _, h := range []string{"Name", "Description", "Quantity", "Size", "Infinite"} {
		header.AddCell().SetString(h)
	}
	for i := 0; i < count; i++ {
		row := sheet.AddRow()
		desc := gearDescriptions[i%len(gearDescriptions)]
		row.AddCell().SetString(fmt.Sprintf("Gear %d", i+1))
		row.AddCell().SetString(desc)
		row.AddCell().SetInt(i%5 + 1)
		row.AddCell().SetString("")
		row.AddCell().SetString("")
	}

	path := filepath.Join(b.TempDir(), "packing-list.xlsx")
	if err := file.Save(path); err != nil {
		b.Fatal(err)
	}
	return path
}
