package auth

import (
	"context"

	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

// SignUpTxRunner crea identidad y perfil en la misma transacción.
type SignUpTxRunner interface {
	RunSignUp(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		profileRepo repository.ProfileRepository,
	) error) error
}
