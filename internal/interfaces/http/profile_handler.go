package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
	"github.com/jhoicas/estoque-eletronicos/internal/application/usecase"
)

// ProfileHandler lectura y edición de perfiles (protegido).
type ProfileHandler struct {
	uc *usecase.ProfileUseCase
	errorMapper
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *usecase.ProfileUseCase, mapper errorMapper) *ProfileHandler {
	return &ProfileHandler{uc: uc, errorMapper: mapper}
}

// GetByID godoc
// @Summary      Obtener perfil
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del perfil (igual al del usuario)"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{id} [get]
func (h *ProfileHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err, "perfil no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar el perfil propio
// @Tags         profiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del perfil"
// @Param        body  body  dto.UpdateProfileRequest  true  "full_name"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/profiles/{id} [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateOwn(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return h.respond(c, err, "perfil no encontrado")
	}
	return c.JSON(out)
}
