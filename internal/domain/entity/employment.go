package entity

import "time"

// Employment arista WORK_AT: un usuario trabaja en como mucho una empresa.
type Employment struct {
	UserID    string
	CompanyID string
	Since     *time.Time // nil = desconocido
	Position  string
}
