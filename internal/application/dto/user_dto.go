package dto

// RegisterRequest entrada para registro (auth): email y password en texto plano, se hashea en el use case.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida pública de un usuario (sin password ni hash).
// Role y StoreID solo se llenan cuando el usuario tiene una tienda activa.
type UserResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	StoreID *int64 `json:"store_id,omitempty"`
}

// RegisterResponse salida del registro.
type RegisterResponse struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse salida del login. Si NeedsStore es true no se emite token (onboarding).
type LoginResponse struct {
	OK         bool         `json:"ok"`
	NeedsStore bool         `json:"needs_store"`
	Token      string       `json:"token,omitempty"`
	User       UserResponse `json:"user"`
}

// MeResponse claims del token ya verificados.
type MeResponse struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	Email     string `json:"email"`
	StoreID   int64  `json:"store_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
}
