package dto

import "time"

// SignUpRequest entrada del registro. PasswordConfirmation debe coincidir con Password.
type SignUpRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	FullName             string `json:"full_name"`
}

// SignInRequest entrada para iniciar sesión.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse salida de un perfil.
type ProfileResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileRequest entrada para PUT /api/profiles/:id.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
}

// SignUpResponse identidad creada con su perfil.
type SignUpResponse struct {
	UserID  string          `json:"user_id"`
	Email   string          `json:"email"`
	Profile ProfileResponse `json:"profile"`
}

// SessionResponse sesión actual (también devuelta por sign-in junto con el token).
type SessionResponse struct {
	Token     string          `json:"token,omitempty"`
	SessionID string          `json:"session_id"`
	UserID    string          `json:"user_id"`
	Email     string          `json:"email"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   ProfileResponse `json:"profile"`
}
