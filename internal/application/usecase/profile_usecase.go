package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

// ProfileUseCase lectura y edición de perfiles. Solo el dueño puede editar su perfil.
type ProfileUseCase struct {
	repo repository.ProfileRepository
	now  func() time.Time
}

// NewProfileUseCase construye el caso de uso con el puerto de persistencia.
func NewProfileUseCase(repo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{repo: repo, now: time.Now}
}

// GetByID obtiene un perfil por ID.
func (uc *ProfileUseCase) GetByID(ctx context.Context, id string) (*dto.ProfileResponse, error) {
	profile, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromProfile(profile)
	return &out, nil
}

// UpdateOwn actualiza full_name. ErrForbidden si el perfil no es del usuario autenticado.
func (uc *ProfileUseCase) UpdateOwn(ctx context.Context, callerID, id string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if callerID != id {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, domain.NewValidationError("full_name es requerido")
	}
	profile, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	profile.FullName = name
	profile.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	out := dto.FromProfile(profile)
	return &out, nil
}
