package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

func TestItemFilter_Offset(t *testing.T) {
	tests := []struct {
		name     string
		pageNum  int
		pageSize int
		want     uint64
	}{
		{name: "first_page", pageNum: 1, pageSize: 10, want: 0},
		{name: "third_page", pageNum: 3, pageSize: 10, want: 20},
		{name: "zero_page_is_first", pageNum: 0, pageSize: 10, want: 0},
		{name: "negative_page_is_first", pageNum: -4, pageSize: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.ItemFilter{PageNum: tt.pageNum, PageSize: tt.pageSize}
			assert.Equal(t, tt.want, f.Offset())
		})
	}
}

func TestItemFilter_Validate(t *testing.T) {
	assert.NoError(t, domain.ItemFilter{PageSize: 1}.Validate())

	err := domain.ItemFilter{PageSize: 0}.Validate()
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	err = domain.ItemFilter{PageSize: -5}.Validate()
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestItemFilter_ValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		filter  domain.ItemFilter
		wantErr string
	}{
		{name: "max_page_size", filter: domain.ItemFilter{PageSize: domain.MaxPageSize, PageNum: 3}},
		{name: "page_size_above_max", filter: domain.ItemFilter{PageSize: domain.MaxPageSize + 1}, wantErr: "page_size"},
		{name: "huge_page_size", filter: domain.ItemFilter{PageSize: math.MaxInt, PageNum: 3}, wantErr: "page_size"},
		{name: "offset_overflows", filter: domain.ItemFilter{PageSize: domain.MaxPageSize, PageNum: math.MaxInt}, wantErr: "page"},
		{name: "last_representable_page", filter: domain.ItemFilter{PageSize: 1, PageNum: math.MaxInt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.LessOrEqual(t, tt.filter.Offset(), uint64(math.MaxInt64))
				return
			}
			var derr *domain.Error
			if assert.ErrorAs(t, err, &derr) {
				assert.Equal(t, domain.KindValidation, derr.Kind)
				assert.Equal(t, tt.wantErr, derr.Field)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{total: 0, pageSize: 10, want: 0},
		{total: 1, pageSize: 10, want: 1},
		{total: 10, pageSize: 10, want: 1},
		{total: 11, pageSize: 10, want: 2},
		{total: 20, pageSize: 10, want: 2},
		{total: 7, pageSize: 1, want: 7},
		{total: 5, pageSize: 0, want: 0},
		{total: 5, pageSize: math.MaxInt, want: 1},
		{total: math.MaxInt64, pageSize: 2, want: int(math.MaxInt64/2 + 1)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.TotalPages(tt.total, tt.pageSize), "total=%d size=%d", tt.total, tt.pageSize)
	}
}

func TestItemFilter_WithPage(t *testing.T) {
	name := "tent"
	f := domain.ItemFilter{Name: &name, PageSize: 5, PageNum: 1}
	g := f.WithPage(3)

	assert.Equal(t, 1, f.PageNum)
	assert.Equal(t, 3, g.PageNum)
	assert.Equal(t, f.Name, g.Name)
}
