package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/ports"
	"github.com/jhoicas/staffdir/internal/application/usecase"
	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/infrastructure/memory"
	"github.com/jhoicas/staffdir/internal/infrastructure/storage"
)

// recordingPublisher guarda los tipos de evento publicados; err se devuelve en cada Publish.
type recordingPublisher struct {
	mu    sync.Mutex
	types []string
	err   error
}

func (p *recordingPublisher) Publish(_ context.Context, ev ports.RecordEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, ev.Type)
	return p.err
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

type fixture struct {
	store       *memory.Store
	fs          afero.Fs
	events      *recordingPublisher
	users       *usecase.UserUseCase
	companies   *usecase.CompanyUseCase
	employments *usecase.EmploymentUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	fs := afero.NewMemMapFs()
	events := &recordingPublisher{}
	avatars := storage.NewAvatarStoreWithFs(fs, 1<<20)
	return &fixture{
		store:       store,
		fs:          fs,
		events:      events,
		users:       usecase.NewUserUseCase(store.Users(), avatars, events),
		companies:   usecase.NewCompanyUseCase(store.Companies(), events),
		employments: usecase.NewEmploymentUseCase(store.Users(), store.Companies(), store.Employments(), events),
	}
}

func pngUpload() *ports.Upload {
	return pngUploadNamed("Avatar.PNG")
}

func pngUploadNamed(name string) *ports.Upload {
	return ports.NewUploadFromBytes(name, []byte("\x89PNG\r\n\x1a\nfake"))
}

func (f *fixture) createUser(t *testing.T, name, email string) *dto.UserResponse {
	t.Helper()
	out, err := f.users.Create(context.Background(), dto.CreateUserRequest{
		Name:                 name,
		Email:                email,
		Password:             "123456",
		PasswordConfirmation: "123456",
	}, pngUpload())
	require.NoError(t, err)
	return out
}

func (f *fixture) createCompany(t *testing.T, name, since string) *dto.CompanyResponse {
	t.Helper()
	out, err := f.companies.Create(context.Background(), dto.CreateCompanyRequest{Name: name, Since: since})
	require.NoError(t, err)
	return out
}

// invalidFields devuelve los campos de un *domain.ValidationError o falla el test.
func invalidFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba ValidationError, llegó %v", err)
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}
