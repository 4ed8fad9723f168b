// internal/core/domain/taken_item.go
package domain

import "time"

// Rounds bounds for a draw
const (
	MinRounds = 1
	MaxRounds = 6
)

// TakenItem records one draw against an item
type TakenItem struct {
	ID             int64     `json:"id"`
	ItemID         int64     `json:"item_id"`
	Item           *Item     `json:"item,omitempty"`
	ExtractionTime time.Time `json:"extraction_time"`
	Rounds         int       `json:"rounds"`
	Done           bool      `json:"done"`
}

// Validate checks a draw record before it is overwritten
func (t *TakenItem) Validate() error {
	fields := make(map[string]string)
	if t.ID <= 0 {
		fields["id"] = "Taken item id must be set"
	}
	if t.ItemID <= 0 {
		fields["item_id"] = "Item id must be set"
	}
	if t.Rounds < MinRounds || t.Rounds > MaxRounds {
		fields["rounds"] = "Rounds must be between 1 and 6"
	}
	return ValidationFromFields(fields)
}
