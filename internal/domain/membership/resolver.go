package membership

import "github.com/jhoicas/pos-api/internal/domain/entity"

// Active contexto de tienda/rol con el que el usuario opera tras el login.
type Active struct {
	StoreID  int64
	RoleCode string
}

// Resolve elige la membresía activa de un usuario ya cargado (servicio de dominio, sin I/O).
// Sin membresías devuelve ok=false (caso onboarding). Con varias, gana la primera en el orden
// recibido; el repositorio las entrega ordenadas por store_users.id ascendente.
func Resolve(memberships []entity.StoreMembership) (Active, bool) {
	if len(memberships) == 0 {
		return Active{}, false
	}
	first := memberships[0]
	active := Active{StoreID: first.StoreID}
	if first.Role != nil {
		active.RoleCode = first.Role.Code
	}
	return active, true
}
