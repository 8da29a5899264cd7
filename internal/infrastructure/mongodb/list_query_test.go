package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/staffdir/internal/domain/query"
)

func TestUserListTemplate_SinFiltro(t *testing.T) {
	filter, opts := userListTemplate.build(query.Filter{})
	assert.Empty(t, filter)
	assert.Equal(t, bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
	assert.Nil(t, opts.Limit)
}

func TestUserListTemplate_BusquedaLiteral(t *testing.T) {
	filter, opts := userListTemplate.build(query.Filter{Search: "a.b*", SortBy: query.SortByName, Limit: 20})

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	want := primitive.Regex{Pattern: `a\.b\*`, Options: "i"}
	assert.Equal(t, bson.M{"name": want}, or[0])
	assert.Equal(t, bson.M{"email": want}, or[1])

	assert.Equal(t, bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 20, *opts.Limit)
}

func TestCompanyListTemplate_OrdenPorSince(t *testing.T) {
	filter, opts := companyListTemplate.build(query.Filter{Search: "acme", SortBy: query.SortBySince})
	assert.Len(t, filter["$or"], 1)
	assert.Equal(t, bson.D{{Key: "since", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
}

func TestEmployeesPipeline_ExcluyeOrigen(t *testing.T) {
	p := employeesPipeline("acme", "u-1")
	match := p[0][0].Value.(bson.M)
	assert.Equal(t, "acme", match["company_id"])
	assert.Equal(t, bson.M{"$ne": "u-1"}, match["_id"])

	p = employeesPipeline("acme", "")
	_, hasID := p[0][0].Value.(bson.M)["_id"]
	assert.False(t, hasID)
}
