package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa. since: YYYY-MM-DD o RFC 3339.
type CreateCompanyRequest struct {
	Name  string `json:"name" form:"name" validate:"required,max=200"`
	Since string `json:"since" form:"since" validate:"required"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name  string `json:"name" form:"name" validate:"omitempty,max=200"`
	Since string `json:"since" form:"since"`
}

// IsEmpty indica que no se envió ningún campo.
func (r UpdateCompanyRequest) IsEmpty() bool {
	return r.Name == "" && r.Since == ""
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Since     string     `json:"since"` // YYYY-MM-DD
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
