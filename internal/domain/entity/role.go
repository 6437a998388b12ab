package entity

// Códigos de rol sembrados por la migración de roles.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// Role nivel de permiso dentro de una tienda. Datos fijos (seed), no se crean desde la API.
type Role struct {
	ID   int64
	Code string
	Name string
}
