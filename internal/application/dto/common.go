package dto

import "github.com/jhoicas/staffdir/internal/domain"

// ListQuery parámetros de listado (query string).
type ListQuery struct {
	Search string `query:"search"`
	SortBy string `query:"sort_by"`
	Limit  string `query:"limit"` // entero en [5,100]; se valida en domain/query
}

// DeleteRequest modo del ciclo de vida: erase, trash o restore.
type DeleteRequest struct {
	Mode string `json:"mode" form:"mode" query:"mode"`
}

// FieldError campo rechazado dentro de un ErrorResponse.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldErrorsFrom convierte los campos de un error de validación de dominio.
func FieldErrorsFrom(verr *domain.ValidationError) []FieldError {
	out := make([]FieldError, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, FieldError{Field: f.Field, Message: f.Message})
	}
	return out
}

// HealthResponse estado del servicio y del backend de datos.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
