package membership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/membership"
)

func TestResolve_SinMembresias_EsOnboarding(t *testing.T) {
	active, ok := membership.Resolve(nil)
	assert.False(t, ok)
	assert.Equal(t, membership.Active{}, active)

	_, ok = membership.Resolve([]entity.StoreMembership{})
	assert.False(t, ok)
}

func TestResolve_UnaMembresia(t *testing.T) {
	active, ok := membership.Resolve([]entity.StoreMembership{
		{ID: 1, UserID: 10, StoreID: 7, RoleID: 2, Role: &entity.Role{ID: 2, Code: entity.RoleCashier}},
	})
	assert.True(t, ok)
	assert.Equal(t, int64(7), active.StoreID)
	assert.Equal(t, "cashier", active.RoleCode)
}

func TestResolve_VariasMembresias_GanaLaPrimera(t *testing.T) {
	active, ok := membership.Resolve([]entity.StoreMembership{
		{ID: 3, StoreID: 4, Role: &entity.Role{Code: entity.RoleAdmin}},
		{ID: 5, StoreID: 9, Role: &entity.Role{Code: entity.RoleCashier}},
	})
	assert.True(t, ok)
	assert.Equal(t, membership.Active{StoreID: 4, RoleCode: "admin"}, active)
}

func TestResolve_RolNoCargado(t *testing.T) {
	active, ok := membership.Resolve([]entity.StoreMembership{{StoreID: 2}})
	assert.True(t, ok)
	assert.Equal(t, int64(2), active.StoreID)
	assert.Empty(t, active.RoleCode)
}
