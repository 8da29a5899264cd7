package dto

import "time"

// CreateUserRequest entrada para crear un usuario (multipart; el avatar llega como archivo aparte).
// password en texto, se hashea en use case.
type CreateUserRequest struct {
	Name                 string `json:"name" form:"name" validate:"required,max=200"`
	Email                string `json:"email" form:"email" validate:"required,email"`
	Password             string `json:"password" form:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" validate:"required,eqfield=Password"`
}

// UpdateUserRequest entrada para actualizar un usuario. Cadena vacía = campo no enviado.
type UpdateUserRequest struct {
	Name                 string `json:"name" form:"name" validate:"omitempty,max=200"`
	Email                string `json:"email" form:"email" validate:"omitempty,email"`
	Password             string `json:"password" form:"password" validate:"omitempty,min=6"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
}

// IsEmpty indica que no se envió ningún campo de texto.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == "" && r.Email == "" && r.Password == ""
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
