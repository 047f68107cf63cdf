package entity

import "time"

// User identidad de autenticación (credenciales). El perfil visible vive en Profile.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session sesión abierta por un sign-in; se elimina en sign-out.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Active indica si la sesión sigue vigente en el instante now.
func (s *Session) Active(now time.Time) bool {
	return s != nil && now.Before(s.ExpiresAt)
}
