package inventory

import (
	"math"
	"strconv"
	"strings"

	"github.com/dimitrije/sweetshop-api/internal/models"
)

// PriceRange is inclusive on both ends; a nil Max leaves it open.
type PriceRange struct {
	Min float64
	Max *float64
}

func (r PriceRange) Contains(price float64) bool {
	if price < r.Min {
		return false
	}
	return r.Max == nil || price <= *r.Max
}

type Criteria struct {
	Search   string
	Category string
	Price    *PriceRange
}

func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Category == "" && c.Price == nil
}

// ParsePriceRange reads "min-max" or "min". An empty string means no filter.
// An upper bound of 0 is treated as absent.
func ParsePriceRange(s string) (*PriceRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, "-")
	if len(parts) > 2 {
		return nil, invalidPrice()
	}

	lo, ok := parseBound(parts[0])
	if !ok {
		return nil, invalidPrice()
	}

	r := &PriceRange{Min: lo}
	if len(parts) == 2 {
		hi, ok := parseBound(parts[1])
		if !ok {
			return nil, invalidPrice()
		}
		if hi != 0 {
			if hi < lo {
				return nil, invalidPrice()
			}
			r.Max = &hi
		}
	}
	return r, nil
}

func parseBound(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func invalidPrice() error {
	return &ValidationError{Fields: []FieldError{{Field: "price", Message: "invalid price range"}}}
}

// Filter keeps the sweets matching every set criterion, in input order.
func Filter(snapshot []models.Sweet, c Criteria) []models.Sweet {
	search := strings.ToLower(c.Search)

	out := make([]models.Sweet, 0, len(snapshot))
	for _, s := range snapshot {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Category), search) {
			continue
		}
		if c.Category != "" && s.Category != c.Category {
			continue
		}
		if c.Price != nil && !c.Price.Contains(s.Price) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories(snapshot []models.Sweet) []string {
	seen := make(map[string]struct{}, len(snapshot))
	out := make([]string, 0)
	for _, s := range snapshot {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		out = append(out, s.Category)
	}
	return out
}
