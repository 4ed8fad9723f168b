// internal/adapters/packinglist/classifier.go
package packinglist

import (
	"strings"

	"github.com/ammerola/roadie-bag/internal/core/domain"
)

// SizeClassifier guesses an item size from its description
type SizeClassifier struct {
	sizeKeywords     map[domain.ItemSize][]string
	infiniteKeywords []string
}

// NewSizeClassifier returns a classifier loaded with stage gear vocabulary
func NewSizeClassifier() *SizeClassifier {
	return &SizeClassifier{
		sizeKeywords: map[domain.ItemSize][]string{
			domain.SizeSmall: {"pick", "string", "battery", "batteries", "tape", "capo", "tuner",
				"patch cable", "earplug", "marker", "sharpie", "fuse", "adapter", "strap lock", "drumstick"},
			domain.SizeMedium: {"cable", "pedal", "microphone", "mic", "di box", "snake",
				"extension cord", "power strip", "towel", "setlist", "in-ear"},
			domain.SizeLarge: {"amp", "amplifier", "cabinet", "stand", "case", "drum", "keyboard",
				"monitor", "wedge", "speaker", "road case", "subwoofer", "rack"},
		},
		infiniteKeywords: []string{"unlimited", "bulk", "consumable", "refill"},
	}
}

// Classify returns the best scoring size and whether the entry reads as an endless supply
func (c *SizeClassifier) Classify(text string) (domain.ItemSize, bool) {
	textLower := strings.ToLower(text)

	size := domain.SizeMedium
	maxScore := 0
	// fixed order keeps ties stable
	for _, candidate := range []domain.ItemSize{domain.SizeSmall, domain.SizeMedium, domain.SizeLarge} {
		score := 0
		for _, kw := range c.sizeKeywords[candidate] {
			if strings.Contains(textLower, kw) {
				score++
			}
		}
		if score > maxScore {
			size = candidate
			maxScore = score
		}
	}

	infinite := false
	for _, kw := range c.infiniteKeywords {
		if strings.Contains(textLower, kw) {
			infinite = true
			break
		}
	}

	return size, infinite
}
