package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo por tienda.
type ProductRepository interface {
	// ListByStore devuelve los productos activos de la tienda con su ficha cargada, ordenados por nombre.
	ListByStore(ctx context.Context, storeID int64, limit, offset int) ([]*entity.StoreProduct, error)
}
