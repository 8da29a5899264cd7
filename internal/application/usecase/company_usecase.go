package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/ports"
	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/query"
	"github.com/jhoicas/staffdir/internal/domain/repository"
	"github.com/jhoicas/staffdir/pkg/validation"
)

const (
	companyEntity   = "company"
	sinceFormatHint = "debe tener formato YYYY-MM-DD o RFC 3339"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	events    ports.EventPublisher
	lifecycle *LifecycleManager
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia. events puede ser nil.
func NewCompanyUseCase(repo repository.CompanyRepository, events ports.EventPublisher) *CompanyUseCase {
	return &CompanyUseCase{
		repo:      repo,
		events:    publisherOrNop(events),
		lifecycle: NewLifecycleManager(repo, domain.ErrCompanyNotFound),
	}
}

// Create crea una nueva empresa. Genera ID y marcas de tiempo.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Since = strings.TrimSpace(in.Since)

	verr := validation.Struct(in)
	since, ok := entity.ParseDate(in.Since)
	if in.Since != "" && !ok {
		verr.Add("since", sinceFormatHint)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	ts := now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Since:     since,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	out := entityToCompanyResponse(company)
	publish(ctx, uc.events, companyEntity, "created", company.ID, out)
	return out, nil
}

// GetByID obtiene una empresa por ID. domain.ErrCompanyNotFound si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con búsqueda, orden y límite validados.
func (uc *CompanyUseCase) List(ctx context.Context, in dto.ListQuery) ([]dto.CompanyResponse, error) {
	filter, err := query.NewCompanyFilter(query.Params{Search: in.Search, SortBy: in.SortBy, Limit: in.Limit})
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return items, nil
}

// Update aplica una actualización parcial (name y/o since).
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Since = strings.TrimSpace(in.Since)

	verr := validation.Struct(in)
	if in.IsEmpty() {
		verr.Add("body", "debe enviar al menos uno de: name, since")
	}
	since, ok := entity.ParseDate(in.Since)
	if in.Since != "" && !ok {
		verr.Add("since", sinceFormatHint)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	company, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		company.Name = in.Name
	}
	if in.Since != "" {
		company.Since = since
	}
	company.UpdatedAt = now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	out := entityToCompanyResponse(company)
	publish(ctx, uc.events, companyEntity, "updated", id, out)
	return out, nil
}

// Delete aplica el modo del ciclo de vida. (nil, nil) tras un borrado definitivo, que
// elimina también las aristas de empleo hacia la empresa.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string, in dto.DeleteRequest) (*dto.CompanyResponse, error) {
	mode, err := entity.ParseMode(in.Mode)
	if err != nil {
		return nil, err
	}
	state, err := uc.lifecycle.Apply(ctx, id, mode)
	if err != nil {
		return nil, err
	}
	if state == entity.StateErased {
		publish(ctx, uc.events, companyEntity, eventAction(state), id, nil)
		return nil, nil
	}
	company, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := entityToCompanyResponse(company)
	publish(ctx, uc.events, companyEntity, eventAction(state), id, out)
	return out, nil
}

func (uc *CompanyUseCase) find(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return company, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Since:     c.Since.Format(entity.DateLayout),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}
