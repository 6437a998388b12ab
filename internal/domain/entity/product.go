package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product ficha de catálogo compartida entre tiendas. Precio y stock viven en StoreProduct.
type Product struct {
	ID          int64
	UUID        string
	Name        string
	Barcode     string // único si existe
	Description string
	Status      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // borrado lógico
}

// StoreProduct producto ofrecido por una tienda, con su precio y existencias.
// El par (StoreID, ProductID) es único en store_products.
type StoreProduct struct {
	ID        int64
	StoreID   int64
	ProductID int64
	Price     decimal.Decimal // NUMERIC(10,2)
	Stock     int
	MinStock  *int
	Status    bool
	DeletedAt *time.Time
	Product   *Product
}

// Available indica si el producto se puede ofrecer: activo y sin borrar, tanto en la tienda como en el catálogo.
func (sp *StoreProduct) Available() bool {
	if !sp.Status || sp.DeletedAt != nil {
		return false
	}
	return sp.Product != nil && sp.Product.Status && sp.Product.DeletedAt == nil
}

// LowStock indica si la existencia está en o por debajo del mínimo configurado.
func (sp *StoreProduct) LowStock() bool {
	return sp.MinStock != nil && sp.Stock <= *sp.MinStock
}
