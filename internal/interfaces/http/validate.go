package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
)

// newValidator crea un validador que reporta los campos con su nombre JSON.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return sf.Name
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON del request en out y lo valida con los tags `validate`.
// Devuelve nil si todo es correcto; en otro caso el cuerpo de error 400 a responder.
func parseBody(c *fiber.Ctx, v *validator.Validate, out interface{}) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		resp := errorBody("INVALID_BODY", "cuerpo inválido")
		return &resp
	}
	if err := v.Struct(out); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			resp := errorBody("INVALID_BODY", "cuerpo inválido")
			return &resp
		}
		resp := errorBody("VALIDATION", "datos de entrada inválidos")
		resp.Fields = make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, dto.FieldError{
				Field: fe.Field(),
				Rule:  fe.Tag(),
				Param: fe.Param(),
			})
		}
		return &resp
	}
	return nil
}
