package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
	"github.com/jhoicas/estoque-eletronicos/pkg/jwt"
)

// MinPasswordLength largo mínimo de contraseña.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase proveedor de autenticación: sign-up, sign-in, sign-out y sesión actual.
type AuthUseCase struct {
	txRunner    SignUpTxRunner
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	hashCost    int
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	txRunner SignUpTxRunner,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		txRunner:    txRunner,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		jwtCfg:      jwtCfg,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
	}
}

// ValidateSignUp chequeos de formulario; no toca ningún repositorio.
func ValidateSignUp(in dto.SignUpRequest) error {
	if strings.TrimSpace(in.FullName) == "" {
		return domain.NewValidationError("full_name es requerido")
	}
	// Solo la dirección desnuda: "Nombre <a@b.c>" se rechaza.
	email := strings.TrimSpace(in.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.NewValidationError("email inválido")
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return domain.NewValidationError("password debe tener al menos %d caracteres", MinPasswordLength)
	}
	if in.Password != in.PasswordConfirmation {
		return domain.ErrPasswordMismatch
	}
	return nil
}

// SignUp crea la identidad (password con bcrypt) y su perfil con rol "user".
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.SignUpResponse, error) {
	if err := ValidateSignUp(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &entity.Profile{
		ID:        user.ID,
		FullName:  strings.TrimSpace(in.FullName),
		Role:      entity.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.RunSignUp(ctx, func(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) error {
		existing, err := userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return &dto.SignUpResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Profile: dto.FromProfile(profile),
	}, nil
}

// SignIn verifica email/password, abre una sesión y emite el JWT que la referencia.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.SignInRequest) (*dto.SessionResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.NewValidationError("email y password son requeridos")
	}
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	profile, err := uc.profileRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	session := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		CreatedAt: now,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, session.ID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		Token:     token,
		SessionID: session.ID,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: session.ExpiresAt,
		Profile:   dto.FromProfile(profile),
	}, nil
}

// SignOut cierra la sesión; el token deja de ser aceptado aunque no haya expirado.
func (uc *AuthUseCase) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrUnauthorized
	}
	return uc.sessionRepo.Delete(ctx, sessionID)
}

// CurrentSession devuelve la sesión vigente con su usuario y perfil.
func (uc *AuthUseCase) CurrentSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, err := uc.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	profile, err := uc.profileRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.SessionResponse{
		SessionID: session.ID,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: session.ExpiresAt,
		Profile:   dto.FromProfile(profile),
	}, nil
}

// IsSessionActive lo usa el middleware HTTP en cada operación protegida.
func (uc *AuthUseCase) IsSessionActive(ctx context.Context, sessionID, userID string) (bool, error) {
	session, err := uc.activeSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return false, nil
		}
		return false, err
	}
	return session.UserID == userID, nil
}

func (uc *AuthUseCase) activeSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionExpired
	}
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Active(uc.now()) {
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
