package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/staffdir/internal/domain/query"
)

// listTemplate campos buscables y ordenables de una colección.
type listTemplate struct {
	searchFields []string
	sortFields   map[query.SortField]string
}

var (
	userListTemplate = listTemplate{
		searchFields: []string{"name", "email"},
		sortFields: map[query.SortField]string{
			query.SortByName:  "name",
			query.SortByEmail: "email",
		},
	}
	companyListTemplate = listTemplate{
		searchFields: []string{"name"},
		sortFields: map[query.SortField]string{
			query.SortByName:  "name",
			query.SortBySince: "since",
		},
	}
)

// build devuelve filtro y opciones de Find. La búsqueda es una regex literal sin distinción de mayúsculas.
func (t listTemplate) build(f query.Filter) (bson.M, *options.FindOptions) {
	filter := bson.M{}
	if f.HasSearch() {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		or := make(bson.A, 0, len(t.searchFields))
		for _, field := range t.searchFields {
			or = append(or, bson.M{field: pattern})
		}
		filter["$or"] = or
	}

	sortField := "created_at"
	if field, ok := t.sortFields[f.SortBy]; ok {
		sortField = field
	}
	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: 1}, {Key: "_id", Value: 1}})
	if f.HasLimit() {
		opts.SetLimit(int64(f.Limit))
	}
	return filter, opts
}
