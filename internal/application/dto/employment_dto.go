package dto

// EmployRequest asigna (o reasigna) la empresa de un usuario.
type EmployRequest struct {
	CompanyID string `json:"company_id" form:"company_id" validate:"required"`
	Since     string `json:"since" form:"since"` // opcional, YYYY-MM-DD o RFC 3339
	Position  string `json:"position" form:"position" validate:"max=120"`
}
