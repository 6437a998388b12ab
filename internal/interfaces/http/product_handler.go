package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// ProductHandler catálogo de la tienda activa (protegido).
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	log      *logger.Logger
	validate *validator.Validate
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log, validate: newValidator()}
}

// List godoc
// @Summary      Catálogo de la tienda activa
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"  default(20)
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stores/current/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("INVALID_QUERY", "parámetros de paginación inválidos"))
	}
	page.DefaultPage()
	if err := h.validate.Struct(page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("VALIDATION", "limit debe estar entre 1 y 100 y offset ser >= 0"))
	}
	out, err := h.uc.ListForStore(c.UserContext(), GetStoreID(c), page)
	if err != nil {
		return respondError(c, h.log, err, "ProductService", "list")
	}
	return c.JSON(out)
}
