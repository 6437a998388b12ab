package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador sobre el pool (o cualquier Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// ListByStore lista el catálogo activo de una tienda con paginación.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID int64, limit, offset int) ([]*entity.StoreProduct, error) {
	query := `
		SELECT sp.id, sp.store_id, sp.product_id, sp.price, sp.stock, sp.min_stock, sp.status,
		       p.id, p.uuid, p.name, COALESCE(p.barcode, ''), COALESCE(p.description, ''), p.status,
		       p.created_at, p.updated_at
		FROM store_products sp
		JOIN products p ON p.id = sp.product_id
		WHERE sp.store_id = $1 AND sp.status AND p.status
		  AND sp.deleted_at IS NULL AND p.deleted_at IS NULL
		ORDER BY p.name ASC, sp.id ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list store products: %w", err)
	}
	defer rows.Close()

	var list []*entity.StoreProduct
	for rows.Next() {
		var (
			sp entity.StoreProduct
			p  entity.Product
		)
		if err := rows.Scan(
			&sp.ID, &sp.StoreID, &sp.ProductID, &sp.Price, &sp.Stock, &sp.MinStock, &sp.Status,
			&p.ID, &p.UUID, &p.Name, &p.Barcode, &p.Description, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan store product: %w", err)
		}
		sp.Product = &p
		list = append(list, &sp)
	}
	return list, rows.Err()
}
