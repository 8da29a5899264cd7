package entity

import "time"

// Campos de User que admiten verificación de unicidad.
const (
	FieldEmail = "email"
)

// User representa una persona registrada. El avatar es una ruta relativa a la raíz de almacenamiento.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Avatar       string // users/{id}/{archivo}
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // nil = activo
}

// State estado del ciclo de vida derivado de DeletedAt.
func (u *User) State() State {
	return StateOf(u.DeletedAt)
}
