package inventory

import "github.com/dimitrije/sweetshop-api/internal/models"

type StockLevel string

const (
	StockOut StockLevel = "out_of_stock"
	StockLow StockLevel = "low_stock"
	StockIn  StockLevel = "in_stock"
)

// LowStockThreshold is the quantity below which a sweet is reported as low.
const LowStockThreshold = 20

func StockLevelOf(quantity int) StockLevel {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity < LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// CanPurchase reports whether Purchase would succeed on s.
func CanPurchase(s models.Sweet) bool {
	return s.Quantity > 0
}
