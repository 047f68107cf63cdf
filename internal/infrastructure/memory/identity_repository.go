package memory

import (
	"context"

	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProfileRepository = (*ProfileRepo)(nil)
	_ repository.SessionRepository = (*SessionRepo)(nil)
)

// UserRepo identidades en memoria; el email es único.
type UserRepo struct {
	v view
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		for _, existing := range st.users {
			if existing.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		for _, u := range st.users {
			if u.Email == email {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

// ProfileRepo perfiles en memoria; cada perfil referencia una identidad existente.
type ProfileRepo struct {
	v view
}

func (r *ProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.users[p.ID]; !ok {
			return domain.ErrUserNotFound
		}
		st.profiles[p.ID] = *p
		return nil
	})
}

func (r *ProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	var out *entity.Profile
	r.v.read(func(st *state) {
		if p, ok := st.profiles[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.profiles[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *p
		next.CreatedAt = cur.CreatedAt
		st.profiles[p.ID] = next
		return nil
	})
}

// SessionRepo sesiones en memoria.
type SessionRepo struct {
	v view
}

func (r *SessionRepo) Create(_ context.Context, s *entity.Session) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.users[s.UserID]; !ok {
			return domain.ErrUserNotFound
		}
		st.sessions[s.ID] = *s
		return nil
	})
}

func (r *SessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	var out *entity.Session
	r.v.read(func(st *state) {
		if s, ok := st.sessions[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *SessionRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.sessions, id)
		return nil
	})
}
