package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/pkg/validation"
)

func messages(verr *domain.ValidationError) map[string]string {
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestStruct_Valido(t *testing.T) {
	verr := validation.Struct(dto.CreateUserRequest{
		Name: "Ann", Email: "ann@x.io", Password: "secret1", PasswordConfirmation: "secret1",
	})
	require.NotNil(t, verr)
	assert.False(t, verr.HasErrors())
	assert.NoError(t, verr.Err())
}

func TestStruct_AgregaTodosLosCampos(t *testing.T) {
	verr := validation.Struct(dto.CreateUserRequest{
		Email: "no-es-email", Password: "123", PasswordConfirmation: "456",
	})
	require.True(t, verr.HasErrors())
	got := messages(verr)
	assert.Equal(t, "es requerido", got["name"])
	assert.Equal(t, "debe ser un email válido", got["email"])
	assert.Equal(t, "debe tener al menos 6 caracteres", got["password"])
	assert.Equal(t, "debe coincidir con password", got["password_confirmation"])
	assert.ErrorIs(t, verr.Err(), domain.ErrInvalidInput)
}

func TestStruct_OmitEmptyEnUpdate(t *testing.T) {
	verr := validation.Struct(dto.UpdateUserRequest{})
	assert.False(t, verr.HasErrors())

	verr = validation.Struct(dto.UpdateUserRequest{Email: "mal"})
	assert.Contains(t, messages(verr), "email")
}
