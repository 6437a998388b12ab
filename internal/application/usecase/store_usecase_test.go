package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

func TestStoreUseCase_GetCurrent(t *testing.T) {
	repo := memory.NewRepository()
	id := repo.AddStore(entity.Store{
		Name:     "Centro",
		Address:  "Av. Juárez 10",
		Latitude: decimal.NewNullDecimal(decimal.RequireFromString("19.4326077")),
		Status:   true,
	})
	uc := usecase.NewStoreUseCase(repo)

	out, err := uc.GetCurrent(context.Background(), id, entity.RoleCashier)
	require.NoError(t, err)
	assert.Equal(t, id, out.ID)
	assert.Equal(t, "Centro", out.Name)
	assert.Equal(t, "cashier", out.Role)
	assert.True(t, out.Status)
	require.NotNil(t, out.Latitude)
	assert.Equal(t, "19.4326077", out.Latitude.String())
	assert.Nil(t, out.Longitude)
}

func TestStoreUseCase_GetCurrent_NoExiste(t *testing.T) {
	uc := usecase.NewStoreUseCase(memory.NewRepository())

	_, err := uc.GetCurrent(context.Background(), 99, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetCurrent(context.Background(), 0, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreUseCase_GetCurrent_TiendaBorrada(t *testing.T) {
	repo := memory.NewRepository()
	id := repo.AddStore(entity.Store{Name: "Cerrada"})
	repo.SoftDeleteStore(id)

	_, err := usecase.NewStoreUseCase(repo).GetCurrent(context.Background(), id, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreUseCase_GetCurrent_FalloDeBase(t *testing.T) {
	repo := memory.NewRepository()
	repo.Err = errors.New("db caída")

	_, err := usecase.NewStoreUseCase(repo).GetCurrent(context.Background(), 1, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInternal)
}
