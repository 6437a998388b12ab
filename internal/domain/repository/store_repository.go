package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// StoreRepository puerto de lectura para tiendas.
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Store, error)
}
