package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/membership"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/jwt"
)

// TokenIssuer firma los claims del usuario autenticado. Lo implementa *jwt.Manager.
type TokenIssuer interface {
	Generate(in jwt.TokenInput) (string, error)
}

// Config parámetros del caso de uso.
type Config struct {
	BcryptCost int // fuera de [bcrypt.MinCost, bcrypt.MaxCost] se usa bcrypt.DefaultCost
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	cost     int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenIssuer, cfg Config) *AuthUseCase {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthUseCase{userRepo: userRepo, tokens: tokens, cost: cost}
}

// RegisterUser crea un usuario: verifica que el email no exista, hashea con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe (en la verificación previa o por el índice único al insertar).
// Cualquier otro fallo se reporta como ErrInternal sin incluir password ni hash.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar usuario: %v", domain.ErrInternal, err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrInvalidInput
		}
		return nil, fmt.Errorf("%w: hashear password", domain.ErrInternal)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%w: crear usuario: %v", domain.ErrInternal, err)
	}
	return &dto.UserResponse{ID: user.ID, Email: user.Email}, nil
}

// Login verifica email/password y resuelve la tienda activa.
// Sin membresías devuelve NeedsStore=true y ningún token; con membresía firma un token con store_id y role.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmailWithMemberships(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: buscar usuario: %v", domain.ErrInternal, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: verificar password: %v", domain.ErrInternal, err)
	}

	active, ok := membership.Resolve(user.Memberships)
	if !ok {
		return &dto.LoginResponse{
			OK:         true,
			NeedsStore: true,
			User:       dto.UserResponse{ID: user.ID, Email: user.Email},
		}, nil
	}

	token, err := uc.tokens.Generate(jwt.TokenInput{
		UserID:  user.ID,
		UUID:    user.UUID,
		Email:   user.Email,
		StoreID: active.StoreID,
		Role:    active.RoleCode,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generar token: %v", domain.ErrInternal, err)
	}
	storeID := active.StoreID
	return &dto.LoginResponse{
		OK:         true,
		NeedsStore: false,
		Token:      token,
		User: dto.UserResponse{
			ID:      user.ID,
			Email:   user.Email,
			Role:    active.RoleCode,
			StoreID: &storeID,
		},
	}, nil
}

// CurrentUser confirma que el usuario del token sigue activo. Un usuario borrado después de emitido
// el token se reporta como ErrUnauthorized.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	if userID <= 0 {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar usuario: %v", domain.ErrInternal, err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.UserResponse{ID: user.ID, Email: user.Email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
