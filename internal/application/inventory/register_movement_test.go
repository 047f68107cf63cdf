package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-eletronicos/internal/application/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
	"github.com/jhoicas/estoque-eletronicos/internal/infrastructure/memory"
)

const (
	actorID   = "00000000-0000-0000-0000-000000000001"
	productID = "00000000-0000-0000-0000-0000000000aa"
)

// newStore crea un store con un usuario (con perfil) y un producto con el stock indicado.
func newStore(t *testing.T, stock, minimum int) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	now := time.Now()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: actorID, Email: "ana@example.com", CreatedAt: now}))
	require.NoError(t, s.Profiles().Create(ctx, &entity.Profile{ID: actorID, FullName: "Ana", Role: entity.RoleUser}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: productID, Name: "Smart TV 55", Category: entity.CategorySmartTV,
		MinimumStock: minimum, CreatedAt: now, UpdatedAt: now,
	}))
	if stock != 0 {
		_, err := s.Products().AdjustStock(ctx, productID, stock, now)
		require.NoError(t, err)
		require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{
			ID: "seed", ProductID: productID, ActorID: actorID, Type: entity.MovementTypeIn,
			Quantity: stock, MovementDate: now.Add(-time.Hour), CreatedAt: now.Add(-time.Hour),
		}))
	}
	return s
}

func input(typ string, qty int) inventory.MovementInputDTO {
	return inventory.MovementInputDTO{CallerID: actorID, ProductID: productID, Type: typ, Quantity: qty}
}

func currentStock(t *testing.T, s *memory.Store) int {
	t.Helper()
	p, err := s.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func TestRegisterMovement_EntradaYSalida(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 0, 10)
	uc := inventory.NewRegisterMovementUseCase(s, s.Products(), nil, inventory.Options{})

	out, err := uc.RegisterMovement(ctx, input(entity.MovementTypeIn, 15))
	require.NoError(t, err)
	assert.Equal(t, 15, out.CurrentStock)
	assert.False(t, out.LowStock)
	assert.Equal(t, actorID, out.Movement.ActorID)

	out, err = uc.RegisterMovement(ctx, input(entity.MovementTypeOut, 8))
	require.NoError(t, err)
	assert.Equal(t, 7, out.CurrentStock)
	assert.True(t, out.LowStock, "7 <= 10 es stock bajo")
	assert.Equal(t, 7, currentStock(t, s))
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 5, 10)
	uc := inventory.NewRegisterMovementUseCase(s, s.Products(), nil, inventory.Options{})

	cases := []struct {
		name string
		in   inventory.MovementInputDTO
		want error
	}{
		{"cantidad cero", input(entity.MovementTypeIn, 0), domain.ErrInvalidInput},
		{"cantidad negativa", input(entity.MovementTypeOut, -3), domain.ErrInvalidInput},
		{"tipo desconocido", input("ajuste", 1), domain.ErrInvalidInput},
		{"sin producto", inventory.MovementInputDTO{CallerID: actorID, Type: entity.MovementTypeIn, Quantity: 1}, domain.ErrInvalidInput},
		{"sin identidad", inventory.MovementInputDTO{ProductID: productID, Type: entity.MovementTypeIn, Quantity: 1}, domain.ErrUnauthorized},
		{"producto inexistente", inventory.MovementInputDTO{CallerID: actorID, ProductID: "00000000-0000-0000-0000-0000000000ff", Type: entity.MovementTypeIn, Quantity: 1}, domain.ErrNotFound},
		{"salida mayor al stock", input(entity.MovementTypeOut, 6), domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 5, currentStock(t, s), "ningún intento rechazado mueve el stock")
}

// Sacar exactamente todo el stock está permitido y deja 0.
func TestRegisterMovement_SalidaIgualAlStock(t *testing.T) {
	s := newStore(t, 6, 10)
	uc := inventory.NewRegisterMovementUseCase(s, s.Products(), nil, inventory.Options{})

	out, err := uc.RegisterMovement(context.Background(), input(entity.MovementTypeOut, 6))
	require.NoError(t, err)
	assert.Equal(t, 0, out.CurrentStock)
}

func TestRegisterMovement_ActorDistintoDelLlamador(t *testing.T) {
	s := newStore(t, 5, 10)
	uc := inventory.NewRegisterMovementUseCase(s, s.Products(), nil, inventory.Options{})

	in := input(entity.MovementTypeIn, 1)
	in.ActorID = "00000000-0000-0000-0000-000000000099"
	_, err := uc.RegisterMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 5, currentStock(t, s))
}

// failingAdjust simula una falla del ajuste de stock dentro de la transacción.
type failingAdjust struct {
	repository.ProductRepository
}

func (failingAdjust) AdjustStock(context.Context, string, int, time.Time) (int, error) {
	return 0, errors.New("conexión perdida")
}

type failingAdjustRunner struct {
	store *memory.Store
}

func (r failingAdjustRunner) Run(ctx context.Context, fn func(repository.StockMovementRepository, repository.ProductRepository) error) error {
	return r.store.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		return fn(movRepo, failingAdjust{productRepo})
	})
}

// Si el ajuste falla, el movimiento insertado en la misma unidad tampoco queda.
func TestRegisterMovement_FallaDelAjusteRevierteElMovimiento(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 5, 10)
	uc := inventory.NewRegisterMovementUseCase(failingAdjustRunner{store: s}, s.Products(), nil, inventory.Options{})

	_, err := uc.RegisterMovement(ctx, input(entity.MovementTypeIn, 3))
	require.Error(t, err)

	assert.Equal(t, 5, currentStock(t, s))
	list, err := s.Movements().List(ctx, repository.MovementFilter{ProductID: productID})
	require.NoError(t, err)
	assert.Len(t, list, 1, "solo queda el movimiento inicial")
}

// barrierRepo hace que N lecturas consultivas terminen antes de que cualquiera siga.
type barrierRepo struct {
	repository.ProductRepository
	wg *sync.WaitGroup
}

func (b barrierRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := b.ProductRepository.GetByID(ctx, id)
	b.wg.Done()
	b.wg.Wait()
	return p, err
}

func concurrentOuts(t *testing.T, opts inventory.Options) (*memory.Store, []error) {
	t.Helper()
	s := newStore(t, 10, 3)
	var barrier sync.WaitGroup
	barrier.Add(2)
	uc := inventory.NewRegisterMovementUseCase(s, barrierRepo{ProductRepository: s.Products(), wg: &barrier}, nil, opts)

	errs := make([]error, 2)
	var done sync.WaitGroup
	for i := 0; i < 2; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			_, errs[i] = uc.RegisterMovement(context.Background(), input(entity.MovementTypeOut, 6))
		}(i)
	}
	done.Wait()
	return s, errs
}

// Dos salidas de 6 sobre 10 que pasan el chequeo consultivo con la misma lectura:
// ambas se aplican y el stock queda en −2. Ninguna resta se pierde.
func TestRegisterMovement_SalidasConcurrentes_ModoParidad(t *testing.T) {
	s, errs := concurrentOuts(t, inventory.Options{})
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, -2, currentStock(t, s))
}

// Con el modo estricto la segunda salida se rechaza dentro de la transacción.
func TestRegisterMovement_SalidasConcurrentes_ModoEstricto(t *testing.T) {
	s, errs := concurrentOuts(t, inventory.Options{EnforceNonNegative: true})
	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 4, currentStock(t, s))
}
