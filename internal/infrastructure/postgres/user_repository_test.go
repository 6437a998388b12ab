package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

var (
	userCols       = []string{"id", "uuid", "email", "password", "created_at", "updated_at", "deleted_at"}
	membershipCols = []string{
		"su.id", "su.user_id", "su.store_id", "su.role_id",
		"r.id", "r.code", "r.name",
		"s.id", "s.uuid", "s.name", "address", "s.latitude", "s.longitude", "s.status",
		"s.created_at", "s.updated_at",
	}
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return mock
}

func TestUserRepo_Create(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (uuid, email, password)")).
		WithArgs(pgxmock.AnyArg(), "ana@tienda.mx", "$2a$hash").
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	u := &entity.User{Email: "ana@tienda.mx", PasswordHash: "$2a$hash"}
	require.NoError(t, NewUserRepository(mock).Create(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
	assert.Len(t, u.UUID, 36)
	assert.Equal(t, now, u.CreatedAt)
}

func TestUserRepo_Create_ViolacionUnica_EsEmailExistente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(pgxmock.AnyArg(), "ana@tienda.mx", "$2a$hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := NewUserRepository(mock).Create(context.Background(), &entity.User{Email: "ana@tienda.mx", PasswordHash: "$2a$hash"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserRepo_Create_OtroError_NoEsConflicto(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(pgxmock.AnyArg(), "ana@tienda.mx", "$2a$hash").
		WillReturnError(errors.New("conexión cerrada"))

	err := NewUserRepository(mock).Create(context.Background(), &entity.User{Email: "ana@tienda.mx", PasswordHash: "$2a$hash"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Contains(t, err.Error(), "insert user")
}

func TestUserRepo_FindByEmail_SinFilas_DevuelveNil(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL")).
		WithArgs("nadie@tienda.mx").
		WillReturnError(pgx.ErrNoRows)

	u, err := NewUserRepository(mock).FindByEmail(context.Background(), "nadie@tienda.mx")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_FindByID_MapeaColumnas(t *testing.T) {
	mock := newMock(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(int64(3)).
		WillReturnRows(mock.NewRows(userCols).
			AddRow(int64(3), "0b6f3c9e-1d2a-4c4b-9a55-1f1e2d3c4b5a", "caja@tienda.mx", "$2a$hash", created, created, nil))

	u, err := NewUserRepository(mock).FindByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "0b6f3c9e-1d2a-4c4b-9a55-1f1e2d3c4b5a", u.UUID)
	assert.Equal(t, "caja@tienda.mx", u.Email)
	assert.Equal(t, "$2a$hash", u.PasswordHash)
	assert.Equal(t, created, u.CreatedAt)
	assert.Nil(t, u.DeletedAt)
}

func TestUserRepo_FindByID_ErrorDeBase(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnError(errors.New("timeout"))

	u, err := NewUserRepository(mock).FindByID(context.Background(), 3)
	assert.Nil(t, u)
	assert.ErrorContains(t, err, "get user by id")
}

func TestUserRepo_FindByEmailWithMemberships(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(email) = LOWER($1)")).
		WithArgs("caja@tienda.mx").
		WillReturnRows(mock.NewRows(userCols).
			AddRow(int64(3), "0b6f3c9e-1d2a-4c4b-9a55-1f1e2d3c4b5a", "caja@tienda.mx", "$2a$hash", now, now, nil))
	lat := decimal.NullDecimal{Decimal: decimal.RequireFromString("19.4326077"), Valid: true}
	mock.ExpectQuery(`(?s)FROM store_users su.*JOIN roles r.*JOIN stores s.*` +
		regexp.QuoteMeta("WHERE su.user_id = $1 AND s.deleted_at IS NULL") + `.*` +
		regexp.QuoteMeta("ORDER BY su.id ASC")).
		WithArgs(int64(3)).
		WillReturnRows(mock.NewRows(membershipCols).
			AddRow(int64(10), int64(3), int64(5), int64(2), int64(2), "cashier", "Cajero",
				int64(5), "5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c1d", "Centro", "Av. Juárez 10", lat, nil, true, now, now).
			AddRow(int64(11), int64(3), int64(8), int64(1), int64(1), "admin", "Administrador",
				int64(8), "9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a", "Norte", "", nil, nil, true, now, now))

	u, err := NewUserRepository(mock).FindByEmailWithMemberships(context.Background(), "caja@tienda.mx")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Len(t, u.Memberships, 2)

	first := u.Memberships[0]
	assert.Equal(t, int64(10), first.ID)
	assert.Equal(t, int64(5), first.StoreID)
	assert.Equal(t, "cashier", first.Role.Code)
	assert.Equal(t, "Centro", first.Store.Name)
	assert.Equal(t, "Av. Juárez 10", first.Store.Address)
	assert.True(t, first.Store.Latitude.Valid)
	assert.Equal(t, "19.4326077", first.Store.Latitude.Decimal.String())
	assert.False(t, first.Store.Longitude.Valid)

	second := u.Memberships[1]
	assert.Equal(t, int64(8), second.StoreID)
	assert.Equal(t, "admin", second.Role.Code)
	assert.Equal(t, "Norte", second.Store.Name)
}

func TestUserRepo_FindByEmailWithMemberships_SinUsuario_NoConsultaMembresias(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(email) = LOWER($1)")).
		WithArgs("nadie@tienda.mx").
		WillReturnError(pgx.ErrNoRows)

	u, err := NewUserRepository(mock).FindByEmailWithMemberships(context.Background(), "nadie@tienda.mx")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_FindByEmailWithMemberships_ErrorEnMembresias(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(email) = LOWER($1)")).
		WithArgs("caja@tienda.mx").
		WillReturnRows(mock.NewRows(userCols).
			AddRow(int64(3), "0b6f3c9e-1d2a-4c4b-9a55-1f1e2d3c4b5a", "caja@tienda.mx", "$2a$hash", now, now, nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM store_users su")).
		WithArgs(int64(3)).
		WillReturnError(errors.New("relation does not exist"))

	u, err := NewUserRepository(mock).FindByEmailWithMemberships(context.Background(), "caja@tienda.mx")
	assert.Nil(t, u)
	assert.ErrorContains(t, err, "list memberships")
}
