package repository

import (
	"context"

	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para identidades.
// Create devuelve domain.ErrEmailAlreadyExists ante un email duplicado.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// SessionRepository guarda las sesiones abiertas por sign-in.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
