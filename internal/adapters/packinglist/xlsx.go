// internal/adapters/packinglist/xlsx.go
package packinglist

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

// ReadXLSX reads the first sheet of a workbook laid out as
// Name | Description | Quantity | Size | Infinite, with a header row.
// Missing sizes are classified from the description.
func (r *Reader) ReadXLSX(ctx context.Context, path string) ([]Entry, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}

	var entries []Entry
	rowIdx := 0
	err = file.Sheets[0].ForEachRow(func(row *xlsx.Row) error {
		rowIdx++
		if rowIdx == 1 {
			return nil
		}
		if entry, ok := r.parseRow(row); ok {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.logger.InfoContext(ctx, "extracted entries from workbook",
		slog.String("file", path),
		slog.Int("count", len(entries)))
	return entries, nil
}

func (r *Reader) parseRow(row *xlsx.Row) (Entry, bool) {
	get := func(i int) string {
		c := row.GetCell(i)
		if c == nil {
			return ""
		}
		if s, err := c.FormattedValue(); err == nil {
			return strings.TrimSpace(s)
		}
		return strings.TrimSpace(c.String())
	}

	name := get(0)
	if name == "" {
		return Entry{}, false
	}
	description := get(1)

	size, infinite := r.classifier.Classify(name + " " + description)
	if raw := get(3); raw != "" {
		if parsed, err := domain.ParseItemSize(raw); err == nil {
			size = parsed
		}
	}
	if raw := strings.ToLower(get(4)); raw != "" {
		infinite = raw == "true" || raw == "yes" || raw == "1"
	}

	quantity, err := strconv.Atoi(get(2))
	if err != nil || quantity <= 0 {
		quantity = 1
	}

	return Entry{
		Name:        name,
		Description: description,
		Quantity:    quantity,
		Size:        size,
		Infinite:    infinite,
	}, true
}
