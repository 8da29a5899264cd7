package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc         *usecase.CompanyUseCase
	employment *usecase.EmploymentUseCase
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, employment *usecase.EmploymentUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, employment: employment}
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Param        search   query  string  false  "Texto a buscar en name"
// @Param        sort_by  query  string  false  "name | since"
// @Param        limit    query  int     false  "Entre 5 y 100"
// @Success      200      {array}   dto.CompanyResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa (parcial)
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id} [patch]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Papelera, restauración o borrado definitivo
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path   string             true   "ID de la empresa"
// @Param        body  body   dto.DeleteRequest  false  "mode: erase | trash | restore"
// @Param        mode  query  string             false  "Alternativa al cuerpo"
// @Success      200  {object}  dto.CompanyResponse
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
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

// Users godoc
// @Summary      Empleados de la empresa
// @Tags         companies
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {array}   dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{id}/users [get]
func (h *CompanyHandler) Users(c *fiber.Ctx) error {
	out, err := h.employment.UsersOf(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
