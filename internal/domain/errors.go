package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Variantes con mensaje propio: errors.Is las reconoce también como ErrNotFound o ErrConflict.
var (
	ErrUserNotFound       error = kindError{kind: ErrNotFound, msg: "el usuario no existe"}
	ErrCompanyNotFound    error = kindError{kind: ErrNotFound, msg: "la empresa no existe"}
	ErrNotEmployed        error = kindError{kind: ErrNotFound, msg: "el usuario no trabaja en ninguna empresa"}
	ErrEmailAlreadyExists error = kindError{kind: ErrConflict, msg: "el email ya está registrado"}
	ErrInvalidTransition  error = kindError{kind: ErrConflict, msg: "transición de estado inválida"}
)

type kindError struct {
	kind error
	msg  string
}

func (e kindError) Error() string { return e.msg }
func (e kindError) Unwrap() error { return e.kind }

// FieldError describe un campo de entrada rechazado.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError agrupa todos los campos inválidos de una petición.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye el error con los campos dados.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Add agrega un campo inválido.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors indica si hay al menos un campo inválido.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Err devuelve nil si no hay campos inválidos; evita el nil tipado al retornar error.
func (e *ValidationError) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
