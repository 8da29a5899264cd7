package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/staffdir/internal/domain/query"
)

// listTemplate plantilla de listado de una tabla. Solo los nombres declarados aquí
// llegan al texto SQL; búsqueda y límite viajan como parámetros.
type listTemplate struct {
	table         string
	columns       string
	searchColumns []string
	sortColumns   map[query.SortField]string
}

var (
	userListTemplate = listTemplate{
		table:         "users",
		columns:       userColumns,
		searchColumns: []string{"name", "email"},
		sortColumns: map[query.SortField]string{
			query.SortByName:  "name",
			query.SortByEmail: "email",
		},
	}
	companyListTemplate = listTemplate{
		table:         "companies",
		columns:       companyColumns,
		searchColumns: []string{"name"},
		sortColumns: map[query.SortField]string{
			query.SortByName:  "name",
			query.SortBySince: "since",
		},
	}
)

// build devuelve la sentencia y sus argumentos para f.
func (t listTemplate) build(f query.Filter) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 2)

	b.WriteString("SELECT " + t.columns + " FROM " + t.table)

	if f.HasSearch() {
		args = append(args, containsPattern(f.Search))
		conds := make([]string, len(t.searchColumns))
		for i, col := range t.searchColumns {
			conds[i] = col + " ILIKE $1"
		}
		b.WriteString(" WHERE " + strings.Join(conds, " OR "))
	}

	orderBy := "created_at"
	if col, ok := t.sortColumns[f.SortBy]; ok {
		orderBy = col
	}
	b.WriteString(" ORDER BY " + orderBy + " ASC, id ASC")

	if f.HasLimit() {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}
