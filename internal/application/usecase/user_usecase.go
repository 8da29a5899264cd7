package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/ports"
	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/domain/query"
	"github.com/jhoicas/staffdir/internal/domain/repository"
	"github.com/jhoicas/staffdir/pkg/validation"
)

const userEntity = "user"

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo      repository.UserRepository
	avatars   ports.AvatarStorage
	events    ports.EventPublisher
	unique    *UniquenessChecker
	lifecycle *LifecycleManager
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia y el almacenamiento de avatares.
// events puede ser nil.
func NewUserUseCase(repo repository.UserRepository, avatars ports.AvatarStorage, events ports.EventPublisher) *UserUseCase {
	return &UserUseCase{
		repo:      repo,
		avatars:   avatars,
		events:    publisherOrNop(events),
		unique:    NewUniquenessChecker(repo),
		lifecycle: NewLifecycleManager(repo, domain.ErrUserNotFound),
	}
}

// List lista usuarios con búsqueda, orden y límite validados.
func (uc *UserUseCase) List(ctx context.Context, in dto.ListQuery) ([]dto.UserResponse, error) {
	filter, err := query.NewUserFilter(query.Params{Search: in.Search, SortBy: in.SortBy, Limit: in.Limit})
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toUserResponses(list), nil
}

// GetByID obtiene un usuario por ID. domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Create valida, comprueba unicidad del email, guarda el avatar y persiste el usuario.
// Si la inserción falla se intenta borrar el avatar ya escrito.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest, avatar *ports.Upload) (*dto.UserResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	verr := validation.Struct(in)
	if avatar == nil {
		verr.Add("avatar", "es requerido")
	} else if err := uc.avatars.Validate(avatar); err != nil {
		verr.Add("avatar", err.Error())
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	unique, err := uc.unique.IsUnique(ctx, entity.FieldEmail, in.Email, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	path, err := uc.avatars.Store(ctx, id, avatar)
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	ts := now()
	user := &entity.User{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Avatar:       path,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		uc.discardAvatarDir(ctx, id)
		return nil, err
	}

	out := entityToUserResponse(user)
	publish(ctx, uc.events, userEntity, "created", id, out)
	return out, nil
}

// Update aplica una actualización parcial. Requiere al menos un campo o un avatar nuevo.
// El avatar anterior se borra solo después de persistir la nueva ruta.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest, avatar *ports.Upload) (*dto.UserResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	verr := validation.Struct(in)
	if in.IsEmpty() && avatar == nil {
		verr.Add("body", "debe enviar al menos uno de: name, email, password, avatar")
	}
	if in.Password != "" && in.PasswordConfirmation != in.Password {
		verr.Add("password_confirmation", "debe coincidir con password")
	}
	if avatar != nil {
		if err := uc.avatars.Validate(avatar); err != nil {
			verr.Add("avatar", err.Error())
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		unique, err := uc.unique.IsUnique(ctx, entity.FieldEmail, in.Email, id)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = in.Email
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	oldAvatar := user.Avatar
	if avatar != nil {
		path, err := uc.avatars.Store(ctx, id, avatar)
		if err != nil {
			return nil, fmt.Errorf("store avatar: %w", err)
		}
		user.Avatar = path
	}

	user.UpdatedAt = now()
	if err := uc.repo.Update(ctx, user); err != nil {
		if avatar != nil {
			uc.discardAvatar(ctx, user.Avatar)
		}
		return nil, err
	}
	if avatar != nil && oldAvatar != "" && oldAvatar != user.Avatar {
		uc.discardAvatar(ctx, oldAvatar)
	}

	out := entityToUserResponse(user)
	publish(ctx, uc.events, userEntity, "updated", id, out)
	return out, nil
}

// Delete aplica el modo del ciclo de vida. Devuelve (nil, nil) si el usuario fue borrado
// definitivamente; en ese caso también se elimina su directorio de avatares.
func (uc *UserUseCase) Delete(ctx context.Context, id string, in dto.DeleteRequest) (*dto.UserResponse, error) {
	mode, err := entity.ParseMode(in.Mode)
	if err != nil {
		return nil, err
	}
	state, err := uc.lifecycle.Apply(ctx, id, mode)
	if err != nil {
		return nil, err
	}
	if state == entity.StateErased {
		uc.discardAvatarDir(ctx, id)
		publish(ctx, uc.events, userEntity, eventAction(state), id, nil)
		return nil, nil
	}
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := entityToUserResponse(user)
	publish(ctx, uc.events, userEntity, eventAction(state), id, out)
	return out, nil
}

func (uc *UserUseCase) find(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) discardAvatar(ctx context.Context, relPath string) {
	if err := uc.avatars.Remove(ctx, relPath); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", relPath).Msg("no se pudo borrar el avatar")
	}
}

func (uc *UserUseCase) discardAvatarDir(ctx context.Context, id string) {
	if err := uc.avatars.RemoveAll(ctx, id); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("user_id", id).Msg("no se pudo borrar el directorio de avatares")
	}
}

func toUserResponses(list []*entity.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return items
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}
