package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/usecase"
)

const avatarField = "avatar"

// UserHandler maneja las peticiones HTTP para el recurso User y sus relaciones.
type UserHandler struct {
	uc         *usecase.UserUseCase
	employment *usecase.EmploymentUseCase
}

// NewUserHandler construye el handler inyectando los casos de uso.
func NewUserHandler(uc *usecase.UserUseCase, employment *usecase.EmploymentUseCase) *UserHandler {
	return &UserHandler{uc: uc, employment: employment}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Param        search   query  string  false  "Texto a buscar en name y email"
// @Param        sort_by  query  string  false  "name | email"
// @Param        limit    query  int     false  "Entre 5 y 100"
// @Success      200      {array}   dto.UserResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        name                   formData  string  true  "Nombre"
// @Param        email                  formData  string  true  "Email"
// @Param        password               formData  string  true  "Contraseña (mínimo 6)"
// @Param        password_confirmation  formData  string  true  "Confirmación"
// @Param        avatar                 formData  file    true  "jpg, jpeg, png o gif (máx. 5 MiB)"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	avatar, err := formUpload(c, avatarField)
	if err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in, avatar)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario (parcial)
// @Tags         users
// @Accept       multipart/form-data,json
// @Produce      json
// @Param        id                     path      string  true   "ID del usuario"
// @Param        name                   formData  string  false  "Nombre"
// @Param        email                  formData  string  false  "Email"
// @Param        password               formData  string  false  "Contraseña"
// @Param        password_confirmation  formData  string  false  "Requerida si se envía password"
// @Param        avatar                 formData  file    false  "Nuevo avatar"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	avatar, err := formUpload(c, avatarField)
	if err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, avatar)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Papelera, restauración o borrado definitivo
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path   string             true   "ID del usuario"
// @Param        body  body   dto.DeleteRequest  false  "mode: erase | trash | restore"
// @Param        mode  query  string             false  "Alternativa al cuerpo"
// @Success      200  {object}  dto.UserResponse
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	in, err := deleteRequest(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// Company godoc
// @Summary      Empresa del usuario
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id}/company [get]
func (h *UserHandler) Company(c *fiber.Ctx) error {
	out, err := h.employment.CompanyOf(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Employ godoc
// @Summary      Asignar o reemplazar la empresa del usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del usuario"
// @Param        body  body  dto.EmployRequest  true  "Empresa, fecha y cargo"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id}/company [put]
func (h *UserHandler) Employ(c *fiber.Ctx) error {
	var in dto.EmployRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.employment.Employ(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Dismiss godoc
// @Summary      Quitar la empresa del usuario
// @Tags         users
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id}/company [delete]
func (h *UserHandler) Dismiss(c *fiber.Ctx) error {
	if err := h.employment.Dismiss(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Colleagues godoc
// @Summary      Compañeros de empresa del usuario
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {array}   dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id}/collegues [get]
func (h *UserHandler) Colleagues(c *fiber.Ctx) error {
	out, err := h.employment.ColleaguesOf(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
