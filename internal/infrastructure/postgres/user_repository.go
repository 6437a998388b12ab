package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, uuid, email, password, created_at, updated_at, deleted_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios sobre el pool (o cualquier Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario con UUID v4 generado aquí.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.UUID == "" {
		user.UUID = uuid.New().String()
	}
	query := `
		INSERT INTO users (uuid, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, user.UUID, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID obtiene un usuario activo por ID.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(ctx, "get user by id", query, id)
}

// FindByEmail obtiene un usuario activo por email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL LIMIT 1`
	return r.scanOne(ctx, "get user by email", query, email)
}

// FindByEmailWithMemberships obtiene el usuario y sus membresías (rol y tienda), de la más antigua a la más nueva.
// Las tiendas dadas de baja no cuentan.
func (r *UserRepo) FindByEmailWithMemberships(ctx context.Context, email string) (*entity.User, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return u, err
	}

	query := `
		SELECT su.id, su.user_id, su.store_id, su.role_id,
		       r.id, r.code, r.name,
		       s.id, s.uuid, s.name, COALESCE(s.address, ''), s.latitude, s.longitude, s.status,
		       s.created_at, s.updated_at
		FROM store_users su
		JOIN roles r ON r.id = su.role_id
		JOIN stores s ON s.id = su.store_id
		WHERE su.user_id = $1 AND s.deleted_at IS NULL
		ORDER BY su.id ASC`
	rows, err := r.q.Query(ctx, query, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m     entity.StoreMembership
			role  entity.Role
			store entity.Store
		)
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.StoreID, &m.RoleID,
			&role.ID, &role.Code, &role.Name,
			&store.ID, &store.UUID, &store.Name, &store.Address, &store.Latitude, &store.Longitude, &store.Status,
			&store.CreatedAt, &store.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		m.Role = &role
		m.Store = &store
		u.Memberships = append(u.Memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return u, nil
}

func (r *UserRepo) scanOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.UUID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
