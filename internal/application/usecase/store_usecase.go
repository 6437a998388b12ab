package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// StoreUseCase consulta la tienda activa del usuario autenticado.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso con el puerto de persistencia.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// GetCurrent devuelve la tienda del token junto con el rol del usuario en ella.
// Devuelve domain.ErrNotFound si la tienda ya no existe o fue dada de baja.
func (uc *StoreUseCase) GetCurrent(ctx context.Context, storeID int64, role string) (*dto.StoreResponse, error) {
	if storeID <= 0 {
		return nil, domain.ErrNotFound
	}
	store, err := uc.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: obtener tienda: %v", domain.ErrInternal, err)
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return entityToStoreResponse(store, role), nil
}

func entityToStoreResponse(s *entity.Store, role string) *dto.StoreResponse {
	out := &dto.StoreResponse{
		ID:      s.ID,
		UUID:    s.UUID,
		Name:    s.Name,
		Address: s.Address,
		Status:  s.Status,
		Role:    role,
	}
	if s.Latitude.Valid {
		lat := s.Latitude.Decimal
		out.Latitude = &lat
	}
	if s.Longitude.Valid {
		lng := s.Longitude.Decimal
		out.Longitude = &lng
	}
	return out
}
