package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSweetRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    *int    `json:"quantity,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateSweetRequest is a partial edit. Version, when set, must match the
// stored version.
type UpdateSweetRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Description *string  `json:"description,omitempty"`
	Version     *int     `json:"version,omitempty"`
}

type PurchaseRequest struct {
	Version *int `json:"version,omitempty"`
}

type RestockRequest struct {
	Quantity int  `json:"quantity"`
	Version  *int `json:"version,omitempty"`
}

type SweetResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Description *string    `json:"description,omitempty"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	Version     int        `json:"version"`
	StockLevel  string     `json:"stock_level"`
	Purchasable bool       `json:"purchasable"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SweetListResponse struct {
	Sweets []SweetResponse `json:"sweets"`
	Count  int             `json:"count"`
	Total  int             `json:"total"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ConflictResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
