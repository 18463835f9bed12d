package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	SKU          string           `json:"sku" validate:"required"`
	Name         string           `json:"name" validate:"required"`
	Description  *string          `json:"description"`
	Price        decimal.Decimal  `json:"price" validate:"min=0"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
	ReorderPoint *int             `json:"reorderPoint" validate:"omitempty,min=0"`
	CategoryID   *uint            `json:"categoryId"`
}

// UpdateProductRequest uses pointers so absent fields are left untouched.
type UpdateProductRequest struct {
	SKU          *string          `json:"sku"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
	ReorderPoint *int             `json:"reorderPoint" validate:"omitempty,min=0"`
	CategoryID   *uint            `json:"categoryId"`
}

type ProductResponse struct {
	ID           uint             `json:"id"`
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	CostPrice    *decimal.Decimal `json:"costPrice,omitempty"`
	ReorderPoint *int             `json:"reorderPoint,omitempty"`
	CategoryID   *uint            `json:"categoryId,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

type ProductFilter struct {
	SKU        string
	Name       string
	CategoryID *uint
	Page       int
	Limit      int
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
