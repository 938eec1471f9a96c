package inventory

import (
	"errors"
	"math"
	"testing"

	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestNewSweet_Success(t *testing.T) {
	creator := uuid.New()

	s, err := NewSweet(CreateInput{
		Name:        "  Gummy Bear ",
		Category:    "gummy",
		Price:       3.5,
		Quantity:    intPtr(12),
		Description: strPtr(" chewy "),
	}, creator)

	require.NoError(t, err)
	assert.Equal(t, "Gummy Bear", s.Name)
	assert.Equal(t, "gummy", s.Category)
	assert.Equal(t, 3.5, s.Price)
	assert.Equal(t, 12, s.Quantity)
	require.NotNil(t, s.Description)
	assert.Equal(t, "chewy", *s.Description)
	require.NotNil(t, s.CreatedBy)
	assert.Equal(t, creator, *s.CreatedBy)
}

func TestNewSweet_DefaultsQuantityToZero(t *testing.T) {
	s, err := NewSweet(CreateInput{Name: "Toffee", Category: "caramel", Price: 0}, uuid.Nil)

	require.NoError(t, err)
	assert.Equal(t, 0, s.Quantity)
	assert.Nil(t, s.CreatedBy)
	assert.Nil(t, s.Description)
}

func TestNewSweet_CollectsEveryInvalidField(t *testing.T) {
	_, err := NewSweet(CreateInput{
		Name:     "   ",
		Category: "",
		Price:    -1,
		Quantity: intPtr(-3),
	}, uuid.New())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		fields[i] = f.Field
	}
	assert.Equal(t, []string{"name", "category", "price", "quantity"}, fields)
	assert.True(t, IsValidation(err))
}

func TestNewSweet_RejectsNonFinitePrice(t *testing.T) {
	_, err := NewSweet(CreateInput{Name: "a", Category: "b", Price: math.NaN()}, uuid.Nil)
	assert.True(t, IsValidation(err))

	_, err = NewSweet(CreateInput{Name: "a", Category: "b", Price: MaxPrice + 1}, uuid.Nil)
	assert.True(t, IsValidation(err))
}

func TestApplyEdit_OverwritesOnlyNamedFields(t *testing.T) {
	desc := "old"
	s := models.Sweet{ID: uuid.New(), Name: "Fudge", Category: "chocolate", Price: 4, Quantity: 7, Description: &desc, Version: 3}

	next, err := ApplyEdit(s, EditInput{Price: floatPtr(4.25), Description: strPtr("")})

	require.NoError(t, err)
	assert.Equal(t, "Fudge", next.Name)
	assert.Equal(t, "chocolate", next.Category)
	assert.Equal(t, 4.25, next.Price)
	assert.Equal(t, 7, next.Quantity)
	assert.Nil(t, next.Description)
	assert.Equal(t, 3, next.Version)

	// input untouched
	assert.Equal(t, 4.0, s.Price)
	assert.Equal(t, "old", *s.Description)
}

func TestApplyEdit_Empty(t *testing.T) {
	s := models.Sweet{Name: "Fudge", Category: "chocolate"}

	_, err := ApplyEdit(s, EditInput{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestApplyEdit_InvalidLeavesSweetUnchanged(t *testing.T) {
	s := models.Sweet{Name: "Fudge", Category: "chocolate", Quantity: 2}

	got, err := ApplyEdit(s, EditInput{Name: strPtr(""), Quantity: intPtr(-1)})

	assert.True(t, IsValidation(err))
	assert.Equal(t, s, got)
}

func TestPurchase(t *testing.T) {
	for _, q := range []int{1, 2, 19, 20, 1000} {
		s, err := Purchase(models.Sweet{Quantity: q})
		require.NoError(t, err)
		assert.Equal(t, q-1, s.Quantity)
	}
}

func TestPurchase_OutOfStock(t *testing.T) {
	s := models.Sweet{Name: "Gummy Bear", Quantity: 0}

	got, err := Purchase(s)

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 0, got.Quantity)
	assert.False(t, CanPurchase(got))
}

func TestRestock(t *testing.T) {
	for _, q := range []int{0, 1, 5, 100} {
		for _, a := range []int{1, 3, 50} {
			s, err := Restock(models.Sweet{Quantity: q}, a)
			require.NoError(t, err)
			assert.Equal(t, q+a, s.Quantity)
		}
	}
}

func TestRestock_RejectsNonPositive(t *testing.T) {
	for _, a := range []int{0, -1, -100} {
		s, err := Restock(models.Sweet{Quantity: 4}, a)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "Quantity must be greater than 0", verr.Error())
		assert.Equal(t, 4, s.Quantity)
	}
}

func TestRestock_Overflow(t *testing.T) {
	s, err := Restock(models.Sweet{Quantity: MaxQuantity - 1}, 2)

	assert.True(t, IsValidation(err))
	assert.Equal(t, MaxQuantity-1, s.Quantity)
}

func TestConfirmDelete(t *testing.T) {
	assert.ErrorIs(t, ConfirmDelete(false), ErrDeleteNotConfirmed)
	assert.NoError(t, ConfirmDelete(true))
}

func TestStockLevelOf(t *testing.T) {
	assert.Equal(t, StockOut, StockLevelOf(0))
	assert.Equal(t, StockLow, StockLevelOf(1))
	assert.Equal(t, StockLow, StockLevelOf(LowStockThreshold-1))
	assert.Equal(t, StockIn, StockLevelOf(LowStockThreshold))
}
