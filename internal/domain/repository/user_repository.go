package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Find* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	// Create persiste un usuario cuyo PasswordHash ya viene hasheado. Asigna ID, UUID y timestamps.
	// Devuelve domain.ErrEmailAlreadyExists si el índice único de email lo rechaza.
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByEmailWithMemberships carga además las membresías con su Role y Store.
	FindByEmailWithMemberships(ctx context.Context, email string) (*entity.User, error)
}
