package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/domain"
)

func TestCompanyCreate_FechaNormalizada(t *testing.T) {
	f := newFixture(t)

	a := f.createCompany(t, "Acme", "2001-02-03")
	b := f.createCompany(t, "Globex", "1999-05-06T23:30:00Z")

	assert.Equal(t, "2001-02-03", a.Since)
	assert.Equal(t, "1999-05-06", b.Since)
	assert.Equal(t, []string{"company.created", "company.created"}, f.events.Types())
}

func TestCompanyCreate_Validacion(t *testing.T) {
	f := newFixture(t)

	_, err := f.companies.Create(context.Background(), dto.CreateCompanyRequest{Since: "ayer"})
	assert.ElementsMatch(t, []string{"name", "since"}, invalidFields(t, err))

	_, err = f.companies.Create(context.Background(), dto.CreateCompanyRequest{Name: "Acme"})
	assert.Equal(t, []string{"since"}, invalidFields(t, err))
}

func TestCompanyList_OrdenPorSince(t *testing.T) {
	f := newFixture(t)
	f.createCompany(t, "Nueva", "2020-01-01")
	f.createCompany(t, "Vieja", "1950-01-01")
	f.createCompany(t, "Media", "1990-01-01")

	list, err := f.companies.List(context.Background(), dto.ListQuery{SortBy: "since", Limit: "5"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Vieja", "Media", "Nueva"}, []string{list[0].Name, list[1].Name, list[2].Name})

	_, err = f.companies.List(context.Background(), dto.ListQuery{SortBy: "email"})
	assert.Equal(t, []string{"sort_by"}, invalidFields(t, err))
}

func TestCompanyUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.createCompany(t, "Acme", "2001-02-03")

	out, err := f.companies.Update(ctx, c.ID, dto.UpdateCompanyRequest{Since: "2010-10-10"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", out.Name)
	assert.Equal(t, "2010-10-10", out.Since)

	_, err = f.companies.Update(ctx, c.ID, dto.UpdateCompanyRequest{})
	assert.Equal(t, []string{"body"}, invalidFields(t, err))

	_, err = f.companies.Update(ctx, "nope", dto.UpdateCompanyRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestCompanyDelete_TrashRestoreErase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.createCompany(t, "Acme", "2001-02-03")

	trashed, err := f.companies.Delete(ctx, c.ID, dto.DeleteRequest{Mode: "trash"})
	require.NoError(t, err)
	require.NotNil(t, trashed.DeletedAt)
	assert.True(t, trashed.UpdatedAt.Equal(*trashed.DeletedAt))

	got, err := f.companies.GetByID(ctx, c.ID)
	require.NoError(t, err, "las lecturas incluyen registros en papelera")
	assert.NotNil(t, got.DeletedAt)

	restored, err := f.companies.Delete(ctx, c.ID, dto.DeleteRequest{Mode: "restore"})
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	erased, err := f.companies.Delete(ctx, c.ID, dto.DeleteRequest{Mode: "erase"})
	require.NoError(t, err)
	assert.Nil(t, erased)

	_, err = f.companies.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}
