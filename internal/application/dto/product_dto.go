package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCategoryRequest cambios parciales de la categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateProductRequest entrada para crear un producto. Barcode vacío = se genera uno de 13 dígitos.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	CategoryID    string          `json:"category_id" validate:"required,uuid"`
	Barcode       string          `json:"barcode" validate:"omitempty,numeric,max=64"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	PhotoURL      string          `json:"photo_url" validate:"omitempty,url"`
}

// UpdateProductRequest cambios parciales del producto.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=255"`
	CategoryID    *string          `json:"category_id" validate:"omitempty,uuid"`
	Barcode       *string          `json:"barcode" validate:"omitempty,numeric,max=64"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	PhotoURL      *string          `json:"photo_url" validate:"omitempty,url"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	Barcode       string          `json:"barcode"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	PhotoURL      string          `json:"photo_url,omitempty"`
	TotalStock    int64           `json:"total_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
