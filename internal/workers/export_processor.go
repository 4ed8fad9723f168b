// internal/workers/export_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/core/ports"
	"github.com/ammerola/roadie-bag/internal/core/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	itemHeaders = []string{
		"ID", "Name", "Description", "Size", "Quantity", "Infinite",
		"Added By", "Created At", "Draws",
	}
	historyHeaders = []string{
		"Draw ID", "Item ID", "Item Name", "Extracted At", "Rounds", "Done",
	}
)

// ExportConfig tunes the export processor
type ExportConfig struct {
	Prefix     string
	PageSize   int
	PresignTTL time.Duration
	StatusTTL  time.Duration
}

// ExportProcessor renders the bag into a workbook and stores it
type ExportProcessor struct {
	items   ports.ItemRepository
	draws   ports.DrawRepository
	cache   ports.CacheRepository
	storage ports.ObjectStorage
	clock   ports.Clock
	config  ExportConfig
	logger  *slog.Logger
}

// NewExportProcessor creates a new export processor
func NewExportProcessor(
	items ports.ItemRepository,
	draws ports.DrawRepository,
	cache ports.CacheRepository,
	storage ports.ObjectStorage,
	clock ports.Clock,
	config ExportConfig,
	logger *slog.Logger,
) *ExportProcessor {
	if config.PageSize <= 0 {
		config.PageSize = 200
	}
	if config.Prefix == "" {
		config.Prefix = "exports"
	}
	return &ExportProcessor{
		items:   items,
		draws:   draws,
		cache:   cache,
		storage: storage,
		clock:   clock,
		config:  config,
		logger:  logger.With(slog.String("processor", "export")),
	}
}

// ProcessExport builds, uploads and publishes one bag export
func (p *ExportProcessor) ProcessExport(ctx context.Context, t *asynq.Task) error {
	var payload ExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log := p.logger.With(slog.String("export_id", payload.ExportID))
	log.InfoContext(ctx, "processing export", slog.String("requested_by", payload.Username))

	status, err := p.export(ctx, payload)
	if err != nil {
		if finalAttempt(ctx) {
			p.saveStatus(ctx, &domain.ExportStatus{
				ID:          payload.ExportID,
				State:       domain.ExportFailed,
				RequestedBy: payload.RequestedBy,
				RequestedAt: payload.RequestedAt,
				Error:       err.Error(),
			})
		}
		return err
	}

	p.saveStatus(ctx, status)
	log.InfoContext(ctx, "export completed",
		slog.String("object_key", status.ObjectKey),
		slog.Int("items", status.Items),
		slog.Int("draws", status.Draws))
	return nil
}

func (p *ExportProcessor) export(ctx context.Context, payload ExportPayload) (*domain.ExportStatus, error) {
	items, err := p.allItems(ctx)
	if err != nil {
		return nil, err
	}

	history, err := p.draws.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw history: %w", err)
	}

	counts := make(map[int64]int64, len(items))
	for _, item := range items {
		n, err := p.cache.GetCounter(ctx, services.DrawCountKey(item.ID))
		if err != nil {
			p.logger.WarnContext(ctx, "failed to read draw counter",
				slog.Int64("item_id", item.ID), "err", err)
			continue
		}
		counts[item.ID] = n
	}

	data, err := BuildWorkbook(items, history, counts)
	if err != nil {
		return nil, err
	}

	now := p.clock.Now().UTC()
	key := path.Join(p.config.Prefix, now.Format("2006-01-02"), payload.ExportID+".xlsx")
	if _, err := p.storage.Upload(ctx, key, bytes.NewReader(data), xlsxContentType, map[string]string{
		"export-id":    payload.ExportID,
		"requested-by": payload.Username,
	}); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := p.storage.GetPresignedURL(ctx, key, p.config.PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	return &domain.ExportStatus{
		ID:          payload.ExportID,
		State:       domain.ExportCompleted,
		RequestedBy: payload.RequestedBy,
		RequestedAt: payload.RequestedAt,
		CompletedAt: &now,
		ObjectKey:   key,
		URL:         url,
		Items:       len(items),
		Draws:       len(history),
	}, nil
}

// allItems walks every page of the unfiltered listing
func (p *ExportProcessor) allItems(ctx context.Context) ([]*domain.Item, error) {
	filter := domain.ItemFilter{PageSize: p.config.PageSize, PageNum: 1}

	var items []*domain.Item
	for {
		page, err := p.items.Filter(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to load items page %d: %w", filter.PageNum, err)
		}
		items = append(items, page.Items...)
		if filter.PageNum >= page.TotalPages {
			return items, nil
		}
		filter = filter.WithPage(filter.PageNum + 1)
	}
}

func (p *ExportProcessor) saveStatus(ctx context.Context, status *domain.ExportStatus) {
	if err := p.cache.SetWithTTL(ctx, services.ExportStatusKey(status.ID), status, p.config.StatusTTL); err != nil {
		p.logger.ErrorContext(ctx, "failed to save export status",
			slog.String("export_id", status.ID), "err", err)
	}
}

func finalAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return true
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return true
	}
	return retried >= maxRetry
}

// BuildWorkbook renders the items and draw history sheets
func BuildWorkbook(items []*domain.Item, history []*domain.TakenItem, counts map[int64]int64) ([]byte, error) {
	file := xlsx.NewFile()

	itemSheet, err := file.AddSheet("Items")
	if err != nil {
		return nil, fmt.Errorf("failed to add items sheet: %w", err)
	}
	addHeader(itemSheet, itemHeaders)
	for _, item := range items {
		row := itemSheet.AddRow()
		row.AddCell().SetInt64(item.ID)
		row.AddCell().SetString(item.Name)
		row.AddCell().SetString(item.Description)
		row.AddCell().SetString(item.Size.String())
		row.AddCell().SetInt(item.Quantity)
		row.AddCell().SetBool(item.Infinite)
		row.AddCell().SetString(item.AddedBy.Username)
		row.AddCell().SetDateTime(item.CreatedAt)
		row.AddCell().SetInt64(counts[item.ID])
	}

	historySheet, err := file.AddSheet("History")
	if err != nil {
		return nil, fmt.Errorf("failed to add history sheet: %w", err)
	}
	addHeader(historySheet, historyHeaders)
	for _, taken := range history {
		row := historySheet.AddRow()
		row.AddCell().SetInt64(taken.ID)
		row.AddCell().SetInt64(taken.ItemID)
		name := ""
		if taken.Item != nil {
			name = taken.Item.Name
		}
		row.AddCell().SetString(name)
		row.AddCell().SetDateTime(taken.ExtractionTime)
		row.AddCell().SetInt(taken.Rounds)
		row.AddCell().SetBool(taken.Done)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, header := range headers {
		cell := row.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}
	for i := 1; i <= len(headers); i++ {
		sheet.SetColWidth(i, i, 18)
	}
}
