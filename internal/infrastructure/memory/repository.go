// Package memory implementa los puertos de repositorio en memoria. Es un doble de pruebas para los casos
// de uso y los handlers HTTP; el binario (cmd/api) siempre usa el adaptador de PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*Repository)(nil)
	_ repository.StoreRepository   = (*Repository)(nil)
	_ repository.ProductRepository = (*Repository)(nil)
)

// Repository implementación en memoria de los puertos de usuarios y tiendas.
// Respeta las mismas reglas que PostgreSQL: email único, (user, store) único, borrado lógico.
type Repository struct {
	mu           sync.RWMutex
	nextUserID   int64
	nextStoreID  int64
	nextMemberID int64
	users        map[int64]*entity.User
	byEmail      map[string]int64
	stores       map[int64]*entity.Store
	memberships  []entity.StoreMembership
	roles        map[string]entity.Role
	nextItemID   int64
	catalog      []entity.StoreProduct

	// Err, si no es nil, lo devuelven todas las operaciones (simula caída de la base).
	Err error
}

// NewRepository construye el repositorio con los roles sembrados (admin=1, cashier=2).
func NewRepository() *Repository {
	return &Repository{
		users:   make(map[int64]*entity.User),
		byEmail: make(map[string]int64),
		stores:  make(map[int64]*entity.Store),
		roles: map[string]entity.Role{
			entity.RoleAdmin:   {ID: 1, Code: entity.RoleAdmin, Name: "Administrador"},
			entity.RoleCashier: {ID: 2, Code: entity.RoleCashier, Name: "Cajero"},
		},
	}
}

// Create persiste un usuario. Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
func (r *Repository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.nextUserID++
	now := time.Now()
	user.ID = r.nextUserID
	if user.UUID == "" {
		user.UUID = uuid.NewString()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	cp.Memberships = nil
	r.users[user.ID] = &cp
	r.byEmail[user.Email] = user.ID
	return nil
}

// FindByID obtiene un usuario activo por ID.
func (r *Repository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.activeUser(id), nil
}

// FindByEmail obtiene un usuario activo por email.
func (r *Repository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return r.activeUser(id), nil
}

// FindByEmailWithMemberships igual que FindByEmail pero con membresías (orden de alta, sin tiendas borradas).
func (r *Repository) FindByEmailWithMemberships(ctx context.Context, email string) (*entity.User, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return u, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.memberships {
		if m.UserID != u.ID {
			continue
		}
		store := r.stores[m.StoreID]
		if store == nil || store.DeletedAt != nil {
			continue
		}
		sc := *store
		role := *m.Role
		m.Store = &sc
		m.Role = &role
		u.Memberships = append(u.Memberships, m)
	}
	return u, nil
}

// GetByID obtiene una tienda no borrada por ID.
func (r *Repository) GetByID(_ context.Context, id int64) (*entity.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.stores[id]
	if !ok || s.DeletedAt != nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// AddStore registra una tienda y devuelve su ID.
func (r *Repository) AddStore(store entity.Store) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextStoreID++
	store.ID = r.nextStoreID
	if store.UUID == "" {
		store.UUID = uuid.NewString()
	}
	r.stores[store.ID] = &store
	return store.ID
}

// AddMembership vincula un usuario a una tienda con el rol indicado por código.
func (r *Repository) AddMembership(userID, storeID int64, roleCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[roleCode]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.stores[storeID]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.memberships {
		if m.UserID == userID && m.StoreID == storeID {
			return domain.ErrConflict
		}
	}
	r.nextMemberID++
	r.memberships = append(r.memberships, entity.StoreMembership{
		ID:      r.nextMemberID,
		UserID:  userID,
		StoreID: storeID,
		RoleID:  role.ID,
		Role:    &role,
	})
	return nil
}

// ListByStore catálogo activo (sin borrados lógicos) de la tienda ordenado por nombre.
func (r *Repository) ListByStore(_ context.Context, storeID int64, limit, offset int) ([]*entity.StoreProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var list []*entity.StoreProduct
	for _, sp := range r.catalog {
		if sp.StoreID != storeID || !sp.Available() {
			continue
		}
		cp := sp
		pc := *sp.Product
		cp.Product = &pc
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Product.Name < list[j].Product.Name })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// AddStoreProduct da de alta un producto en la tienda y devuelve el ID de store_products.
func (r *Repository) AddStoreProduct(item entity.StoreProduct) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextItemID++
	item.ID = r.nextItemID
	if item.Product == nil {
		item.Product = &entity.Product{Status: true}
	}
	p := *item.Product
	if p.ID == 0 {
		p.ID = item.ID
	}
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	item.ProductID = p.ID
	item.Product = &p
	r.catalog = append(r.catalog, item)
	return item.ID
}

// SoftDeleteStore marca la tienda como borrada.
func (r *Repository) SoftDeleteStore(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[id]; ok {
		now := time.Now()
		s.DeletedAt = &now
	}
}

// SoftDeleteUser marca el usuario como borrado.
func (r *Repository) SoftDeleteUser(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		now := time.Now()
		u.DeletedAt = &now
	}
}

func (r *Repository) activeUser(id int64) *entity.User {
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return nil
	}
	cp := *u
	cp.Memberships = nil
	return &cp
}
