package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-eletronicos/internal/application/auth"
	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
)

// AuthHandler maneja registro, inicio y cierre de sesión.
type AuthHandler struct {
	uc *auth.AuthUseCase
	errorMapper
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, mapper errorMapper) *AuthHandler {
	return &AuthHandler{uc: uc, errorMapper: mapper}
}

// SignUp godoc
// @Summary      Registrar usuario
// @Description  Crea la identidad y su perfil (rol "user"). password_confirmation debe coincidir.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "email, password, password_confirmation, full_name"
// @Success      201   {object}  dto.SignUpResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	// Formulario inválido (incluida la confirmación distinta) no llega al proveedor de auth.
	if err := auth.ValidateSignUp(in); err != nil {
		return h.respond(c, err, "")
	}
	out, err := h.uc.SignUp(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SignIn godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SignIn(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err, "perfil no encontrado")
	}
	return c.JSON(out)
}

// SignOut godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := h.uc.SignOut(c.UserContext(), GetSessionID(c)); err != nil {
		return h.respond(c, err, "")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Session godoc
// @Summary      Sesión actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	out, err := h.uc.CurrentSession(c.UserContext(), GetSessionID(c))
	if err != nil {
		return h.respond(c, err, "perfil no encontrado")
	}
	return c.JSON(out)
}
