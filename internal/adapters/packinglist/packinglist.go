// internal/adapters/packinglist/packinglist.go
package packinglist

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

// Entry is one line of a packing list
type Entry struct {
	Name        string
	Description string
	Quantity    int
	Size        domain.ItemSize
	Infinite    bool
}

// Item converts the entry into an unsaved bag item
func (e Entry) Item() *domain.Item {
	return &domain.Item{
		Name:        e.Name,
		Description: e.Description,
		Quantity:    e.Quantity,
		Size:        e.Size,
		Infinite:    e.Infinite,
	}
}

// Reader turns packing list files into entries
type Reader struct {
	classifier *SizeClassifier
	logger     *slog.Logger
}

// NewReader creates a packing list reader
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{
		classifier: NewSizeClassifier(),
		logger:     logger.With(slog.String("component", "packing_list")),
	}
}

// Read dispatches on the file extension
func (r *Reader) Read(ctx context.Context, path string) ([]Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return r.ReadPDF(ctx, path)
	case ".xlsx":
		return r.ReadXLSX(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported packing list format: %s", filepath.Ext(path))
	}
}

var (
	headerRe   = regexp.MustCompile(`(?i)(ITEM.*QTY|DESCRIPTION.*QTY|ITEM.*QUANTITY)`)
	footerRe   = regexp.MustCompile(`(?i)^(TOTAL|END OF LIST|PACKED BY)`)
	quantityRe = regexp.MustCompile(`(?i)\s+(?:x\s*)?(\d{1,4}|inf|∞)\s*$`)
	leadingNum = regexp.MustCompile(`^\d+[.)]?\s+`)
	spaces     = regexp.MustCompile(`\s+`)
	fillers    = regexp.MustCompile(`[-.]{3,}`)
)

// parseLines reads entries from plain text lines. An entry ends with its
// quantity; lines without one are the leading part of a wrapped description.
func (r *Reader) parseLines(lines []string) []Entry {
	startIdx := 0
	for i, line := range lines {
		if headerRe.MatchString(line) {
			startIdx = i + 1
			break
		}
	}

	var entries []Entry
	var descBuffer []string

	for i := startIdx; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if footerRe.MatchString(line) {
			break
		}

		match := quantityRe.FindStringSubmatch(line)
		if match == nil {
			descBuffer = append(descBuffer, line)
			continue
		}

		description := strings.TrimSpace(quantityRe.ReplaceAllString(line, ""))
		if len(descBuffer) > 0 {
			description = strings.Join(append(descBuffer, description), " ")
			descBuffer = descBuffer[:0]
		}
		description = cleanDescription(description)
		if description == "" {
			continue
		}

		entries = append(entries, r.newEntry(description, match[1]))
	}

	return entries
}

func (r *Reader) newEntry(description, qty string) Entry {
	size, infinite := r.classifier.Classify(description)
	quantity, err := strconv.Atoi(qty)
	if err != nil {
		// inf / ∞
		infinite = true
	}
	if infinite && quantity <= 0 {
		quantity = 1
	}

	return Entry{
		Name:        generateItemName(description),
		Description: description,
		Quantity:    quantity,
		Size:        size,
		Infinite:    infinite,
	}
}

func cleanDescription(desc string) string {
	desc = leadingNum.ReplaceAllString(desc, "")
	desc = fillers.ReplaceAllString(desc, " ")
	desc = spaces.ReplaceAllString(desc, " ")
	return strings.TrimSpace(desc)
}

// generateItemName takes the first clause of the description, capped at 60 characters
func generateItemName(description string) string {
	name := description
	if idx := strings.IndexAny(name, ",;("); idx > 0 {
		name = name[:idx]
	}
	if runes := []rune(name); len(runes) > 60 {
		name = string(runes[:60])
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown Item"
	}
	return name
}
