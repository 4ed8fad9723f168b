// internal/core/domain/filter.go
package domain

import (
	"fmt"
	"math"
)

const (
	// DefaultPageSize is used when a listing request does not name a page size
	DefaultPageSize = 50
	MaxPageSize     = 1000
)

// ItemFilter narrows an item listing. Nil or empty fields are not applied.
type ItemFilter struct {
	AddedBy     []int64    `json:"added_by,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Sizes       []ItemSize `json:"size,omitempty"`
	Infinite    *bool      `json:"infinite,omitempty"`
	PageSize    int        `json:"page_size"`
	PageNum     int        `json:"page_num"`
}

// Validate rejects page sizes that cannot produce a page count and pages
// whose offset does not fit a bigint
func (f ItemFilter) Validate() error {
	if f.PageSize <= 0 {
		return FieldValidation("page_size", "Page size must be greater than zero")
	}
	if f.PageSize > MaxPageSize {
		return FieldValidation("page_size", fmt.Sprintf("Page size must be at most %d", MaxPageSize))
	}
	if int64(f.Page()-1) > math.MaxInt64/int64(f.PageSize) {
		return FieldValidation("page", "Page number is too large")
	}
	return nil
}

// Page returns the 1-based page number, treating anything below 1 as the first page
func (f ItemFilter) Page() int {
	if f.PageNum <= 0 {
		return 1
	}
	return f.PageNum
}

// Offset is the number of rows skipped before the requested page
func (f ItemFilter) Offset() uint64 {
	return uint64(f.Page()-1) * uint64(f.PageSize)
}

// WithPage returns a copy of the filter pointing at another page
func (f ItemFilter) WithPage(page int) ItemFilter {
	f.PageNum = page
	return f
}

// ItemPage is one slice of a filtered listing
type ItemPage struct {
	Items        []*Item `json:"items"`
	PageNum      int     `json:"page_num"`
	PageSize     int     `json:"page_size"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int64   `json:"total_results"`
}

// TotalPages is ceil(total / pageSize); pageSize must be positive
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	ps := int64(pageSize)
	pages := total / ps
	if total%ps != 0 {
		pages++
	}
	return int(pages)
}
