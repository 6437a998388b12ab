package dto

import "github.com/shopspring/decimal"

// ProductResponse producto del catálogo de la tienda activa.
type ProductResponse struct {
	ID          int64           `json:"id"` // id de store_products
	ProductID   int64           `json:"product_id"`
	UUID        string          `json:"uuid"`
	Name        string          `json:"name"`
	Barcode     string          `json:"barcode,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    *int            `json:"min_stock,omitempty"`
	LowStock    bool            `json:"low_stock"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
