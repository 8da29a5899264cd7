package usecase_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestUserCreate_OK(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out := f.createUser(t, "  Ana  ", "ana@x.io")

	assert.Equal(t, "Ana", out.Name)
	assert.Regexp(t, regexp.MustCompile(`^users/`+out.ID+`/[0-9a-f-]{36}\.png$`), out.Avatar)
	exists, err := afero.Exists(f.fs, out.Avatar)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, out.CreatedAt, out.UpdatedAt)
	assert.Nil(t, out.DeletedAt)

	stored, err := f.store.Users().GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("123456")))
	assert.Equal(t, []string{"user.created"}, f.events.Types())
}

func TestUserCreate_ValidacionAgregada(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Create(context.Background(), dto.CreateUserRequest{
		Email:                "no-es-email",
		Password:             "123",
		PasswordConfirmation: "321",
	}, nil)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Subset(t, invalidFields(t, err), []string{"name", "email", "password", "password_confirmation", "avatar"})
	assert.Empty(t, f.events.Types())
}

func TestUserCreate_AvatarNoPermitido(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Create(context.Background(), dto.CreateUserRequest{
		Name: "Ana", Email: "ana@x.io", Password: "123456", PasswordConfirmation: "123456",
	}, pngUploadNamed("cv.pdf"))

	assert.Equal(t, []string{"avatar"}, invalidFields(t, err))
}

func TestUserCreate_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Ana", "ana@x.io")

	_, err := f.users.Create(context.Background(), dto.CreateUserRequest{
		Name: "Otra", Email: "ana@x.io", Password: "123456", PasswordConfirmation: "123456",
	}, pngUpload())

	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestUserList_FiltroYErrores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "Carla", "carla@x.io")
	f.createUser(t, "Beto", "beto@x.io")
	f.createUser(t, "Ana", "ana@x.io")

	list, err := f.users.List(ctx, dto.ListQuery{SortBy: "name"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Ana", "Beto", "Carla"}, []string{list[0].Name, list[1].Name, list[2].Name})

	list, err = f.users.List(ctx, dto.ListQuery{Search: "BET"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Beto", list[0].Name)

	_, err = f.users.List(ctx, dto.ListQuery{SortBy: "password", Limit: "1000"})
	assert.ElementsMatch(t, []string{"sort_by", "limit"}, invalidFields(t, err))
}

func TestUserGetByID_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUserUpdate_ReemplazaAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.createUser(t, "Ana", "ana@x.io")

	out, err := f.users.Update(ctx, created.ID, dto.UpdateUserRequest{Name: "Ana María"}, pngUploadNamed("nuevo.JPG"))
	require.NoError(t, err)

	assert.Equal(t, "Ana María", out.Name)
	assert.Equal(t, "ana@x.io", out.Email)
	assert.NotEqual(t, created.Avatar, out.Avatar)
	assert.Regexp(t, `\.jpg$`, out.Avatar)
	oldExists, _ := afero.Exists(f.fs, created.Avatar)
	newExists, _ := afero.Exists(f.fs, out.Avatar)
	assert.False(t, oldExists)
	assert.True(t, newExists)
	assert.False(t, out.UpdatedAt.Before(created.UpdatedAt))
}

func TestUserUpdate_Reglas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.createUser(t, "Ana", "ana@x.io")
	f.createUser(t, "Beto", "beto@x.io")

	_, err := f.users.Update(ctx, ana.ID, dto.UpdateUserRequest{}, nil)
	assert.Equal(t, []string{"body"}, invalidFields(t, err))

	_, err = f.users.Update(ctx, ana.ID, dto.UpdateUserRequest{Password: "abcdef", PasswordConfirmation: "x"}, nil)
	assert.Equal(t, []string{"password_confirmation"}, invalidFields(t, err))

	_, err = f.users.Update(ctx, ana.ID, dto.UpdateUserRequest{Email: "beto@x.io"}, nil)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = f.users.Update(ctx, ana.ID, dto.UpdateUserRequest{Email: "ana@x.io"}, nil)
	assert.NoError(t, err, "su propio email no es conflicto")

	_, err = f.users.Update(ctx, "nope", dto.UpdateUserRequest{Name: "X"}, nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete (ciclo de vida)
// ──────────────────────────────────────────────────────────────────────────────

func TestUserDelete_CicloCompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "Ana", "ana@x.io")

	trashed, err := f.users.Delete(ctx, u.ID, dto.DeleteRequest{Mode: "trash"})
	require.NoError(t, err)
	require.NotNil(t, trashed.DeletedAt)

	_, err = f.users.Delete(ctx, u.ID, dto.DeleteRequest{Mode: "trash"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	restored, err := f.users.Delete(ctx, u.ID, dto.DeleteRequest{Mode: "RESTORE"})
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	_, err = f.users.Delete(ctx, u.ID, dto.DeleteRequest{Mode: "restore"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	erased, err := f.users.Delete(ctx, u.ID, dto.DeleteRequest{Mode: "erase"})
	require.NoError(t, err)
	assert.Nil(t, erased)

	dirExists, _ := afero.DirExists(f.fs, "users/"+u.ID)
	assert.False(t, dirExists)
	_, err = f.users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = f.users.Delete(ctx, u.ID, dto.DeleteRequest{Mode: "erase"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.Equal(t, []string{"user.created", "user.trashed", "user.restored", "user.erased"}, f.events.Types())
}

func TestUserDelete_ModoInvalido(t *testing.T) {
	f := newFixture(t)
	u := f.createUser(t, "Ana", "ana@x.io")

	_, err := f.users.Delete(context.Background(), u.ID, dto.DeleteRequest{})
	assert.Equal(t, []string{"mode"}, invalidFields(t, err))

	_, err = f.users.Delete(context.Background(), u.ID, dto.DeleteRequest{Mode: "purge"})
	assert.Equal(t, []string{"mode"}, invalidFields(t, err))
}

func TestUserCreate_FalloAlPublicarNoRevierte(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker caído")

	out := f.createUser(t, "Ana", "ana@x.io")

	_, err := f.users.GetByID(context.Background(), out.ID)
	assert.NoError(t, err)
}
