package entity

import "time"

// User representa una cuenta de acceso al POS. Puede pertenecer a varias tiendas vía StoreMembership.
type User struct {
	ID           int64
	UUID         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano después del registro
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // borrado lógico

	// Memberships solo se carga en consultas que hacen JOIN con store_users.
	Memberships []StoreMembership
}

// IsDeleted indica si el usuario fue dado de baja lógicamente.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
