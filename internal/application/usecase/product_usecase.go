package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ProductUseCase consulta del catálogo de la tienda activa. Precio y stock solo se leen aquí.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// ListForStore lista los productos activos de la tienda con paginación.
func (uc *ProductUseCase) ListForStore(ctx context.Context, storeID int64, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if storeID <= 0 {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	if page.Limit < 1 || page.Limit > 100 || page.Offset < 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByStore(ctx, storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: listar productos: %v", domain.ErrInternal, err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, sp := range list {
		items = append(items, toProductResponse(sp))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(sp *entity.StoreProduct) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:        sp.ID,
		ProductID: sp.ProductID,
		Price:     sp.Price,
		Stock:     sp.Stock,
		MinStock:  sp.MinStock,
		LowStock:  sp.LowStock(),
	}
	if sp.Product != nil {
		out.UUID = sp.Product.UUID
		out.Name = sp.Product.Name
		out.Barcode = sp.Product.Barcode
		out.Description = sp.Product.Description
	}
	return out
}
