// Package query valida los parámetros de listado antes de que lleguen a un adaptador.
// Un Filter construido aquí solo contiene campos de orden de una lista cerrada y un
// límite dentro de rango, de modo que los adaptadores pueden traducirlo a plantillas
// parametrizadas sin interpolar entrada del cliente.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/staffdir/internal/domain"
)

// Límites aceptados para limit.
const (
	MinLimit = 5
	MaxLimit = 100
)

// SortField campo de orden permitido.
type SortField string

const (
	SortByName  SortField = "name"
	SortByEmail SortField = "email"
	SortBySince SortField = "since"
)

var (
	userSortFields    = []SortField{SortByName, SortByEmail}
	companySortFields = []SortField{SortByName, SortBySince}
)

// Params parámetros crudos tal como llegan en la query string.
type Params struct {
	Search string
	SortBy string
	Limit  string
}

// Filter parámetros de listado validados. Valor cero = sin filtro, orden natural, sin límite.
type Filter struct {
	Search string
	SortBy SortField
	Limit  int
}

func (f Filter) HasSearch() bool { return f.Search != "" }
func (f Filter) HasSort() bool   { return f.SortBy != "" }
func (f Filter) HasLimit() bool  { return f.Limit > 0 }

// NewUserFilter valida p para el listado de usuarios (sort_by ∈ {name, email}).
func NewUserFilter(p Params) (Filter, error) {
	return newFilter(userSortFields, p)
}

// NewCompanyFilter valida p para el listado de empresas (sort_by ∈ {name, since}).
func NewCompanyFilter(p Params) (Filter, error) {
	return newFilter(companySortFields, p)
}

func newFilter(allowed []SortField, p Params) (Filter, error) {
	verr := &domain.ValidationError{}
	f := Filter{Search: strings.TrimSpace(p.Search)}

	if sortBy := strings.TrimSpace(p.SortBy); sortBy != "" {
		f.SortBy = SortField(sortBy)
		if !contains(allowed, f.SortBy) {
			verr.Add("sort_by", "debe ser uno de: "+join(allowed))
		}
	}

	if raw := strings.TrimSpace(p.Limit); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			verr.Add("limit", "debe ser un número entero")
		case n < MinLimit || n > MaxLimit:
			verr.Add("limit", fmt.Sprintf("debe estar entre %d y %d", MinLimit, MaxLimit))
		default:
			f.Limit = n
		}
	}

	if err := verr.Err(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func contains(fields []SortField, f SortField) bool {
	for _, allowed := range fields {
		if allowed == f {
			return true
		}
	}
	return false
}

func join(fields []SortField) string {
	s := make([]string, len(fields))
	for i, f := range fields {
		s[i] = string(f)
	}
	return strings.Join(s, ", ")
}
