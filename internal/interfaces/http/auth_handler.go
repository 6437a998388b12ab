package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/pkg/logger"
)

const authContext = "AuthService"

// PublicKeyProvider expone la llave pública con la que se verifican los tokens.
type PublicKeyProvider interface {
	PublicKeyPEM() ([]byte, error)
}

// AuthHandler maneja registro, login y consulta de la sesión.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	keys     PublicKeyProvider
	log      *logger.Logger
	metrics  *Metrics
	validate *validator.Validate
}

// NewAuthHandler construye el handler de auth. metrics puede ser nil.
func NewAuthHandler(uc *auth.AuthUseCase, keys PublicKeyProvider, log *logger.Logger, metrics *Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, keys: keys, log: log, metrics: metrics, validate: newValidator()}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if bad := parseBody(c, h.validate, &in); bad != nil {
		h.metrics.authOutcome("register", OutcomeInvalid)
		h.log.Warning("register: "+bad.Message, authContext)
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		h.metrics.authOutcome("register", outcomeFor(err))
		return respondError(c, h.log, err, authContext, "register")
	}
	h.metrics.authOutcome("register", OutcomeOK)
	h.log.Info().Int64("user_id", user.ID).Msg("usuario registrado")
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		OK:      true,
		Message: "Usuario creado correctamente",
		User:    *user,
	})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Sin tienda asignada responde needs_store=true y no emite token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if bad := parseBody(c, h.validate, &in); bad != nil {
		h.metrics.authOutcome("login", OutcomeInvalid)
		h.log.Warning("login: "+bad.Message, authContext)
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		h.metrics.authOutcome("login", outcomeFor(err))
		return respondError(c, h.log, err, authContext, "login")
	}
	if out.NeedsStore {
		h.metrics.authOutcome("login", OutcomeNeedsStore)
	} else {
		h.metrics.authOutcome("login", OutcomeOK)
	}
	return c.JSON(out)
}

// PublicKey godoc
// @Summary      Llave pública de verificación (PEM)
// @Tags         auth
// @Produce      plain
// @Success      200  {string}  string
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/auth/public-key [get]
func (h *AuthHandler) PublicKey(c *fiber.Ctx) error {
	pemBytes, err := h.keys.PublicKeyPEM()
	if err != nil {
		return respondError(c, h.log, err, authContext, "public-key")
	}
	c.Set(fiber.HeaderContentType, "application/x-pem-file")
	return c.Send(pemBytes)
}

// Me godoc
// @Summary      Sesión actual
// @Description  Devuelve los claims del token ya verificado si el usuario sigue activo.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := GetClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody("UNAUTHORIZED", "token requerido"))
	}
	user, err := h.uc.CurrentUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err, authContext, "me")
	}
	out := dto.MeResponse{
		ID:      user.ID,
		UUID:    claims.UUID,
		Email:   user.Email,
		StoreID: claims.StoreID,
		Role:    claims.Role,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return c.JSON(out)
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return OutcomeConflict
	case errors.Is(err, domain.ErrUserNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return OutcomeUnauthorized
	default:
		return OutcomeError
	}
}
