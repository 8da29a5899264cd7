package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/staffdir/internal/domain"
)

// State estado del ciclo de vida de un registro.
type State int

const (
	StateActive State = iota
	StateTrashed
	StateErased
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateTrashed:
		return "trashed"
	case StateErased:
		return "erased"
	default:
		return "unknown"
	}
}

// StateOf deriva el estado a partir de la marca de borrado lógico.
func StateOf(deletedAt *time.Time) State {
	if deletedAt != nil {
		return StateTrashed
	}
	return StateActive
}

// Mode operación solicitada sobre el ciclo de vida.
type Mode string

const (
	ModeErase   Mode = "erase"
	ModeTrash   Mode = "trash"
	ModeRestore Mode = "restore"
)

// ParseMode valida el modo recibido. Un modo vacío o desconocido es un error de validación.
func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeErase, ModeTrash, ModeRestore:
		return m, nil
	case "":
		return "", domain.NewValidationError(domain.FieldError{Field: "mode", Message: "es requerido"})
	default:
		return "", domain.NewValidationError(domain.FieldError{Field: "mode", Message: "debe ser uno de: erase, trash, restore"})
	}
}

// Transition aplica mode sobre from. Erased es terminal; trash sobre Trashed y restore sobre
// Active devuelven domain.ErrInvalidTransition.
func Transition(from State, mode Mode) (State, error) {
	if from == StateErased {
		return from, domain.ErrInvalidTransition
	}
	switch mode {
	case ModeErase:
		return StateErased, nil
	case ModeTrash:
		if from == StateTrashed {
			return from, domain.ErrInvalidTransition
		}
		return StateTrashed, nil
	case ModeRestore:
		if from == StateActive {
			return from, domain.ErrInvalidTransition
		}
		return StateActive, nil
	default:
		return from, domain.NewValidationError(domain.FieldError{Field: "mode", Message: "modo desconocido"})
	}
}
