package entity

import "time"

// RoleUser rol por defecto de un perfil recién creado.
const RoleUser = "user"

// Profile datos públicos del usuario. Comparte ID con la identidad (User).
type Profile struct {
	ID        string
	FullName  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
