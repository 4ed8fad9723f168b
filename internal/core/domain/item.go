// internal/core/domain/item.go
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ItemSize is the closed set of item sizes
type ItemSize int

// Size constants; values are the storage encoding
const (
	SizeSmall   ItemSize = 0
	SizeMedium  ItemSize = 1
	SizeLarge   ItemSize = 2
	SizeUnknown ItemSize = 99
)

// AllSizes lists the sizes a persisted item may carry
var AllSizes = []ItemSize{SizeSmall, SizeMedium, SizeLarge}

// ItemSizeFromCode decodes the storage value; anything outside 0..2 is Unknown
func ItemSizeFromCode(code int) ItemSize {
	switch code {
	case 0:
		return SizeSmall
	case 1:
		return SizeMedium
	case 2:
		return SizeLarge
	default:
		return SizeUnknown
	}
}

// Code returns the storage encoding
func (s ItemSize) Code() int {
	return int(ItemSizeFromCode(int(s)))
}

func (s ItemSize) String() string {
	switch ItemSizeFromCode(int(s)) {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	default:
		return "Unknown"
	}
}

// ParseItemSize accepts a size name (any case) or its integer code
func ParseItemSize(v string) (ItemSize, error) {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "small":
		return SizeSmall, nil
	case "medium":
		return SizeMedium, nil
	case "large":
		return SizeLarge, nil
	case "unknown":
		return SizeUnknown, nil
	}
	code, err := strconv.Atoi(v)
	if err != nil {
		return SizeUnknown, fmt.Errorf("invalid item size %q", v)
	}
	return ItemSizeFromCode(code), nil
}

// MarshalJSON writes the size name
func (s ItemSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON reads a size name or an integer code
func (s *ItemSize) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		*s = ItemSizeFromCode(code)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("item size must be a name or a code: %w", err)
	}
	parsed, err := ParseItemSize(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Item is one supply entry in the bag
type Item struct {
	ID          int64     `json:"id"`
	AddedBy     User      `json:"added_by"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Size        ItemSize  `json:"size"`
	Infinite    bool      `json:"infinite"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks a new item before it is stored
func (i *Item) Validate() error {
	fields := i.fieldErrors()
	if _, set := fields["quantity"]; !set && !i.Infinite && i.Quantity <= 0 {
		fields["quantity"] = "Item quantity must be > 0"
	}
	return ValidationFromFields(fields)
}

// ValidateForUpdate checks an edited item. Quantity is written as given,
// so a finite item may be saved with zero or fewer units left.
func (i *Item) ValidateForUpdate() error {
	fields := i.fieldErrors()
	if i.ID <= 0 {
		fields["id"] = "Item id must be set"
	}
	return ValidationFromFields(fields)
}

// Eligible reports whether the item can currently be drawn
func (i *Item) Eligible() bool {
	return i.Infinite || i.Quantity >= 1
}

// Quantity is stored in an INTEGER column
const (
	MaxQuantity = math.MaxInt32
	MinQuantity = math.MinInt32
)

func (i *Item) fieldErrors() map[string]string {
	fields := make(map[string]string)
	if i.Quantity > MaxQuantity || i.Quantity < MinQuantity {
		fields["quantity"] = fmt.Sprintf("Item quantity must be between %d and %d", MinQuantity, MaxQuantity)
	}
	if strings.TrimSpace(i.Name) == "" {
		fields["name"] = "Item name can't be empty"
	}
	if i.Size.Code() == int(SizeUnknown) {
		fields["size"] = "Item size must be set"
	}
	return fields
}
