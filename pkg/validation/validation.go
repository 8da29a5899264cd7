// Package validation traduce las etiquetas validate de los DTOs a errores de dominio agregados.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/staffdir/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores usan el nombre JSON del campo, no el del struct.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// Struct valida s y devuelve todos los campos inválidos. Nunca devuelve nil:
// el llamador puede seguir agregando campos y terminar con Err().
func Struct(s any) *domain.ValidationError {
	out := &domain.ValidationError{}
	err := validate.Struct(s)
	if err == nil {
		return out
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out.Add("body", err.Error())
		return out
	}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
	case "eqfield":
		return "debe coincidir con " + strings.ToLower(fe.Param())
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "no es válido"
	}
}
