// internal/adapters/packinglist/pdf.go
package packinglist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReadPDF extracts entries from the text layer of a PDF packing list
func (r *Reader) ReadPDF(ctx context.Context, path string) ([]Entry, error) {
	lines, err := r.extractTextLines(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	entries := r.parseLines(lines)
	r.logger.InfoContext(ctx, "extracted entries from PDF",
		slog.String("file", path),
		slog.Int("count", len(entries)))
	return entries, nil
}

func (r *Reader) extractTextLines(ctx context.Context, path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var lines []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			r.logger.WarnContext(ctx, "failed to extract text from page",
				slog.Int("page", pageNum),
				"err", err)
			continue
		}
		lines = append(lines, strings.Split(text, "\n")...)
	}

	return lines, nil
}
