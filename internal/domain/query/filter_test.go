package query_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/query"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba ValidationError, llegó %v", err)
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestNewUserFilter_Valido(t *testing.T) {
	f, err := query.NewUserFilter(query.Params{Search: "  ann ", SortBy: "email", Limit: "10"})
	require.NoError(t, err)
	assert.Equal(t, query.Filter{Search: "ann", SortBy: query.SortByEmail, Limit: 10}, f)
	assert.True(t, f.HasSearch())
	assert.True(t, f.HasSort())
	assert.True(t, f.HasLimit())
}

func TestNewUserFilter_VacioEsSinRestricciones(t *testing.T) {
	f, err := query.NewUserFilter(query.Params{})
	require.NoError(t, err)
	assert.False(t, f.HasSearch())
	assert.False(t, f.HasSort())
	assert.False(t, f.HasLimit())
}

func TestNewUserFilter_SortNoPermitido(t *testing.T) {
	_, err := query.NewUserFilter(query.Params{SortBy: "since"})
	assert.Equal(t, []string{"sort_by"}, fieldsOf(t, err))

	_, err = query.NewUserFilter(query.Params{SortBy: "name; DROP TABLE users"})
	assert.Equal(t, []string{"sort_by"}, fieldsOf(t, err))
}

func TestNewCompanyFilter_SortPermitido(t *testing.T) {
	f, err := query.NewCompanyFilter(query.Params{SortBy: "since"})
	require.NoError(t, err)
	assert.Equal(t, query.SortBySince, f.SortBy)

	_, err = query.NewCompanyFilter(query.Params{SortBy: "email"})
	assert.Equal(t, []string{"sort_by"}, fieldsOf(t, err))
}

func TestNewFilter_LimitesDeRango(t *testing.T) {
	for _, ok := range []string{"5", "100", "42"} {
		_, err := query.NewUserFilter(query.Params{Limit: ok})
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"4", "101", "0", "-5", "diez", "5.5"} {
		_, err := query.NewUserFilter(query.Params{Limit: bad})
		assert.Equal(t, []string{"limit"}, fieldsOf(t, err), bad)
	}
}

func TestNewFilter_ErroresAgregados(t *testing.T) {
	_, err := query.NewCompanyFilter(query.Params{SortBy: "password", Limit: "1000"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ElementsMatch(t, []string{"sort_by", "limit"}, fieldsOf(t, err))
}
