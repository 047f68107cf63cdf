// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORE_DRIVER=memory (demos locales) y en las pruebas de casos de uso y handlers.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/estoque-eletronicos/internal/application/auth"
	"github.com/jhoicas/estoque-eletronicos/internal/application/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ auth.SignUpTxRunner = (*Store)(nil)

type state struct {
	users     map[string]entity.User
	profiles  map[string]entity.Profile
	sessions  map[string]entity.Session
	products  map[string]entity.Product
	movements map[string]entity.StockMovement
}

func newState() *state {
	return &state{
		users:     make(map[string]entity.User),
		profiles:  make(map[string]entity.Profile),
		sessions:  make(map[string]entity.Session),
		products:  make(map[string]entity.Product),
		movements: make(map[string]entity.StockMovement),
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.profiles {
		c.profiles[k] = v
	}
	for k, v := range st.sessions {
		c.sessions[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.movements {
		c.movements[k] = v
	}
	return c
}

// view es la superficie que usan los repos: el Store (con lock) o una transacción en curso.
type view interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store guarda todas las tablas bajo un único RWMutex.
type Store struct {
	mu   sync.RWMutex
	data *state
}

// New crea un Store vacío.
func New() *Store {
	return &Store{data: newState()}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{v: s} }

// Profiles repositorio de perfiles.
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{v: s} }

// Users repositorio de identidades.
func (s *Store) Users() *UserRepo { return &UserRepo{v: s} }

// Sessions repositorio de sesiones.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{v: s} }

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
// Las transacciones se serializan entre sí y con las escrituras fuera de tx.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(ctx, func(tx *txView) error {
		return fn(&StockMovementRepo{v: tx}, &ProductRepo{v: tx})
	})
}

// RunSignUp igual que Run, con repos de identidad y perfil.
func (s *Store) RunSignUp(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) error) error {
	return s.inTx(ctx, func(tx *txView) error {
		return fn(&UserRepo{v: tx}, &ProfileRepo{v: tx})
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *txView) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &txView{st: s.data.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx.st
	return nil
}

// txView opera sobre la copia privada de una transacción; el Store ya está bloqueado.
type txView struct {
	st *state
}

func (t *txView) read(fn func(st *state)) { fn(t.st) }

func (t *txView) write(fn func(st *state) error) error { return fn(t.st) }
