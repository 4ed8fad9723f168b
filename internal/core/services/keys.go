// internal/core/services/keys.go
package services

import "fmt"

// DrawCountKey is the per-item draw counter bumped by the draw notification task
func DrawCountKey(itemID int64) string {
	return fmt.Sprintf("draws:count:%d", itemID)
}

// ExportStatusKey holds the status of one export request
func ExportStatusKey(id string) string {
	return "export:" + id
}
