// internal/core/domain/export.go
package domain

import "time"

// ExportState is the lifecycle of a bag export
type ExportState string

const (
	ExportQueued    ExportState = "queued"
	ExportCompleted ExportState = "completed"
	ExportFailed    ExportState = "failed"
)

// ExportStatus reports where a requested export stands
type ExportStatus struct {
	ID          string      `json:"id"`
	State       ExportState `json:"state"`
	RequestedBy int64       `json:"requested_by"`
	RequestedAt time.Time   `json:"requested_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	ObjectKey   string      `json:"object_key,omitempty"`
	URL         string      `json:"url,omitempty"`
	Items       int         `json:"items,omitempty"`
	Draws       int         `json:"draws,omitempty"`
	Error       string      `json:"error,omitempty"`
}
