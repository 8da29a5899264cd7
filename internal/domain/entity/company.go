package entity

import "time"

// DateLayout formato de fechas sin hora (Company.Since, Employment.Since).
const DateLayout = "2006-01-02"

// Company representa una organización que emplea usuarios.
type Company struct {
	ID        string
	Name      string
	Since     time.Time // fecha de fundación (solo fecha, UTC)
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // nil = activa
}

// State estado del ciclo de vida derivado de DeletedAt.
func (c *Company) State() State {
	return StateOf(c.DeletedAt)
}

// ParseDate acepta YYYY-MM-DD o RFC 3339 y devuelve la fecha truncada al día en UTC.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
