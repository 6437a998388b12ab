package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// StoreHandler expone la tienda activa de la sesión.
type StoreHandler struct {
	uc  *usecase.StoreUseCase
	log *logger.Logger
}

// NewStoreHandler construye el handler de tiendas.
func NewStoreHandler(uc *usecase.StoreUseCase, log *logger.Logger) *StoreHandler {
	return &StoreHandler{uc: uc, log: log}
}

// Current godoc
// @Summary      Tienda activa
// @Description  Tienda del token (store_id) con el rol del usuario en ella.
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StoreResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/current [get]
func (h *StoreHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.GetCurrent(c.UserContext(), GetStoreID(c), GetRole(c))
	if err != nil {
		return respondError(c, h.log, err, "StoreService", "current")
	}
	return c.JSON(out)
}
