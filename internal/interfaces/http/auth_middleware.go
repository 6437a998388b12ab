package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/pkg/jwt"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// Locals keys cargadas por AuthMiddleware.
const (
	LocalUserID  = "user_id"
	LocalStoreID = "store_id"
	LocalRole    = "role"
	LocalClaims  = "claims"
)

// TokenVerifier verifica un token y devuelve sus claims. Lo implementa *jwt.Manager.
type TokenVerifier interface {
	Parse(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware valida el Bearer Token (RS256) y carga user_id, store_id, role y claims en c.Locals.
func AuthMiddleware(verifier TokenVerifier, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("MISSING_TOKEN", "Authorization header requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("INVALID_TOKEN", "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("MISSING_TOKEN", "token vacío"))
		}
		claims, err := verifier.Parse(tokenString)
		if err != nil {
			if jwt.IsExpired(err) {
				return c.Status(fiber.StatusUnauthorized).JSON(errorBody("TOKEN_EXPIRED", "token expirado"))
			}
			log.Warning("token rechazado: "+err.Error(), "AuthMiddleware")
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("INVALID_TOKEN", "token inválido"))
		}
		userID, err := claims.UserID()
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("INVALID_TOKEN", "token inválido"))
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalStoreID, claims.StoreID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// RequireRole permite el paso solo si el rol del token está en roles. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("MISSING_ROLE", "el token no incluye rol"))
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(errorBody("FORBIDDEN", "rol sin permiso para este recurso"))
		}
		return c.Next()
	}
}

// GetUserID devuelve el ID de usuario del token (0 si no hay).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetStoreID devuelve la tienda activa del token (0 si no hay).
func GetStoreID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalStoreID).(int64)
	return v
}

// GetRole devuelve el código de rol del token.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// GetClaims devuelve los claims completos del token.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	v, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return v
}
