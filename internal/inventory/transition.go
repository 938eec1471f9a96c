package inventory

import (
	"math"
	"strings"

	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
)

const (
	// MaxQuantity matches the INTEGER column.
	MaxQuantity = math.MaxInt32
	// MaxPrice matches NUMERIC(10, 2).
	MaxPrice = 99999999.99

	maxNameLength     = 255
	maxCategoryLength = 100
)

type CreateInput struct {
	Name        string
	Category    string
	Price       float64
	Quantity    *int
	Description *string
}

// EditInput overwrites only the non-nil fields. An empty Description clears it.
type EditInput struct {
	Name        *string
	Category    *string
	Price       *float64
	Quantity    *int
	Description *string
}

func (in EditInput) IsEmpty() bool {
	return in.Name == nil && in.Category == nil && in.Price == nil &&
		in.Quantity == nil && in.Description == nil
}

// NewSweet validates in and returns the sweet to insert. Quantity defaults to 0.
func NewSweet(in CreateInput, createdBy uuid.UUID) (models.Sweet, error) {
	verr := &ValidationError{}

	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	checkName(verr, name)
	checkCategory(verr, category)
	checkPrice(verr, in.Price)

	quantity := 0
	if in.Quantity != nil {
		quantity = *in.Quantity
		checkQuantity(verr, quantity)
	}

	if err := verr.orNil(); err != nil {
		return models.Sweet{}, err
	}

	s := models.Sweet{
		Name:        name,
		Category:    category,
		Price:       in.Price,
		Quantity:    quantity,
		Description: normalizeDescription(in.Description),
	}
	if createdBy != uuid.Nil {
		s.CreatedBy = &createdBy
	}
	return s, nil
}

// ApplyEdit returns a copy of s with the fields named in in overwritten.
func ApplyEdit(s models.Sweet, in EditInput) (models.Sweet, error) {
	if in.IsEmpty() {
		return s, ErrNoFieldsToUpdate
	}

	verr := &ValidationError{}
	next := s

	if in.Name != nil {
		next.Name = strings.TrimSpace(*in.Name)
		checkName(verr, next.Name)
	}
	if in.Category != nil {
		next.Category = strings.TrimSpace(*in.Category)
		checkCategory(verr, next.Category)
	}
	if in.Price != nil {
		next.Price = *in.Price
		checkPrice(verr, next.Price)
	}
	if in.Quantity != nil {
		next.Quantity = *in.Quantity
		checkQuantity(verr, next.Quantity)
	}
	if in.Description != nil {
		next.Description = normalizeDescription(in.Description)
	}

	if err := verr.orNil(); err != nil {
		return s, err
	}
	return next, nil
}

// Purchase takes exactly one unit.
func Purchase(s models.Sweet) (models.Sweet, error) {
	if !CanPurchase(s) {
		return s, ErrOutOfStock
	}
	s.Quantity--
	return s, nil
}

// ValidateRestock checks the amount on its own so callers can reject it
// before reading the sweet.
func ValidateRestock(add int) error {
	if add <= 0 {
		verr := &ValidationError{}
		verr.add("quantity", "Quantity must be greater than 0")
		return verr
	}
	return nil
}

// Restock adds add units; add must be positive.
func Restock(s models.Sweet, add int) (models.Sweet, error) {
	if err := ValidateRestock(add); err != nil {
		return s, err
	}
	if add > MaxQuantity-s.Quantity {
		verr := &ValidationError{}
		verr.add("quantity", "resulting stock exceeds the maximum quantity")
		return s, verr
	}
	s.Quantity += add
	return s, nil
}

func ConfirmDelete(confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}
	return nil
}

func checkName(verr *ValidationError, name string) {
	switch {
	case name == "":
		verr.add("name", "name is required")
	case len(name) > maxNameLength:
		verr.add("name", "name is too long")
	}
}

func checkCategory(verr *ValidationError, category string) {
	switch {
	case category == "":
		verr.add("category", "category is required")
	case len(category) > maxCategoryLength:
		verr.add("category", "category is too long")
	}
}

func checkPrice(verr *ValidationError, price float64) {
	switch {
	case math.IsNaN(price) || math.IsInf(price, 0):
		verr.add("price", "price must be a number")
	case price < 0:
		verr.add("price", "price must not be negative")
	case price > MaxPrice:
		verr.add("price", "price is too large")
	}
}

func checkQuantity(verr *ValidationError, quantity int) {
	switch {
	case quantity < 0:
		verr.add("quantity", "quantity must not be negative")
	case quantity > MaxQuantity:
		verr.add("quantity", "quantity is too large")
	}
}

func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
