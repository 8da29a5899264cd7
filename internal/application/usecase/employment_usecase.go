package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/ports"
	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/repository"
	"github.com/jhoicas/staffdir/pkg/validation"
)

const employmentEntity = "employment"

// EmploymentUseCase consultas de relación entre usuarios y empresas (arista WORK_AT).
type EmploymentUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	repo      repository.EmploymentRepository
	events    ports.EventPublisher
}

// NewEmploymentUseCase construye el caso de uso. events puede ser nil.
func NewEmploymentUseCase(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	repo repository.EmploymentRepository,
	events ports.EventPublisher,
) *EmploymentUseCase {
	return &EmploymentUseCase{users: users, companies: companies, repo: repo, events: publisherOrNop(events)}
}

// CompanyOf empresa del usuario. ErrUserNotFound si el usuario no existe, ErrNotEmployed si no tiene empresa.
func (uc *EmploymentUseCase) CompanyOf(ctx context.Context, userID string) (*dto.CompanyResponse, error) {
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	company, err := uc.repo.CompanyOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotEmployed
	}
	return entityToCompanyResponse(company), nil
}

// UsersOf empleados de la empresa. ErrCompanyNotFound si la empresa no existe.
func (uc *EmploymentUseCase) UsersOf(ctx context.Context, companyID string) ([]dto.UserResponse, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	list, err := uc.repo.UsersOf(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toUserResponses(list), nil
}

// ColleaguesOf usuarios que comparten empresa con userID (sin incluirlo). Lista vacía si no tiene empresa.
func (uc *EmploymentUseCase) ColleaguesOf(ctx context.Context, userID string) ([]dto.UserResponse, error) {
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ColleaguesOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponses(list), nil
}

// Employ asigna la empresa del usuario, reemplazando la anterior si existía.
func (uc *EmploymentUseCase) Employ(ctx context.Context, userID string, in dto.EmployRequest) (*dto.CompanyResponse, error) {
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	in.Position = strings.TrimSpace(in.Position)
	in.Since = strings.TrimSpace(in.Since)

	verr := validation.Struct(in)
	e := &entity.Employment{UserID: userID, CompanyID: in.CompanyID, Position: in.Position}
	if in.Since != "" {
		since, ok := entity.ParseDate(in.Since)
		if !ok {
			verr.Add("since", sinceFormatHint)
		}
		e.Since = &since
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if err := uc.repo.Employ(ctx, e); err != nil {
		return nil, err
	}
	publish(ctx, uc.events, employmentEntity, "created", userID, map[string]string{
		"user_id":    userID,
		"company_id": company.ID,
		"position":   e.Position,
	})
	return entityToCompanyResponse(company), nil
}

// Dismiss elimina la arista de empleo. ErrNotEmployed si el usuario no tenía empresa.
func (uc *EmploymentUseCase) Dismiss(ctx context.Context, userID string) error {
	if err := uc.requireUser(ctx, userID); err != nil {
		return err
	}
	removed, err := uc.repo.Dismiss(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotEmployed
	}
	publish(ctx, uc.events, employmentEntity, "removed", userID, nil)
	return nil
}

func (uc *EmploymentUseCase) requireUser(ctx context.Context, userID string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return nil
}
