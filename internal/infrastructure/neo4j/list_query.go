package neo4j

import (
	"strings"

	"github.com/jhoicas/staffdir/internal/domain/query"
)

// listTemplate etiqueta, propiedades buscables y ordenables de un tipo de nodo.
type listTemplate struct {
	label        string
	searchFields []string
	sortFields   map[query.SortField]string
}

var (
	userListTemplate = listTemplate{
		label:        "User",
		searchFields: []string{"name", "email"},
		sortFields: map[query.SortField]string{
			query.SortByName:  "name",
			query.SortByEmail: "email",
		},
	}
	companyListTemplate = listTemplate{
		label:        "Company",
		searchFields: []string{"name"},
		sortFields: map[query.SortField]string{
			query.SortByName:  "name",
			query.SortBySince: "since",
		},
	}
)

// build devuelve la consulta y sus parámetros. Solo los valores del cliente viajan como parámetros;
// etiqueta y propiedades salen de la plantilla.
func (t listTemplate) build(f query.Filter) (string, map[string]any) {
	params := map[string]any{}
	var b strings.Builder
	b.WriteString("MATCH (n:" + t.label + ")")

	if f.HasSearch() {
		conds := make([]string, 0, len(t.searchFields))
		for _, field := range t.searchFields {
			conds = append(conds, "toLower(n."+field+") CONTAINS toLower($search)")
		}
		b.WriteString(" WHERE " + strings.Join(conds, " OR "))
		params["search"] = f.Search
	}

	sortField := "created_at"
	if field, ok := t.sortFields[f.SortBy]; ok {
		sortField = field
	}
	b.WriteString(" RETURN n ORDER BY n." + sortField + ", n.id")

	if f.HasLimit() {
		b.WriteString(" LIMIT $limit")
		params["limit"] = int64(f.Limit)
	}
	return b.String(), params
}
