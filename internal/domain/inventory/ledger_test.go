package inventory_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/inventory"
)

func TestStockDelta(t *testing.T) {
	assert.Equal(t, 15, inventory.StockDelta(entity.MovementTypeIn, 15))
	assert.Equal(t, -8, inventory.StockDelta(entity.MovementTypeOut, 8))
	assert.Equal(t, 0, inventory.StockDelta("ajuste", 8), "tipo desconocido no tiene efecto")
	assert.Equal(t, 0, inventory.StockDelta("", 3))
}

// El stock incremental debe coincidir con el recálculo completo para cualquier secuencia.
func TestReplay_CoincideConAplicacionIncremental(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		var movs []entity.StockMovement
		incremental, sumIn, sumOut := 0, 0, 0
		for i := 0; i < rng.Intn(40); i++ {
			qty := rng.Intn(20) + 1
			typ := entity.MovementTypeIn
			if rng.Intn(2) == 0 {
				typ = entity.MovementTypeOut
				sumOut += qty
			} else {
				sumIn += qty
			}
			movs = append(movs, entity.StockMovement{Type: typ, Quantity: qty})
			incremental += inventory.StockDelta(typ, qty)
		}
		require.Equal(t, sumIn-sumOut, inventory.Replay(movs))
		require.Equal(t, incremental, inventory.Replay(movs))
	}
}

func TestReplay_SinMovimientos(t *testing.T) {
	assert.Equal(t, 0, inventory.Replay(nil))
}

func TestCheckSufficiency(t *testing.T) {
	assert.NoError(t, inventory.CheckSufficiency(10, 10))
	assert.NoError(t, inventory.CheckSufficiency(10, 3))
	assert.ErrorIs(t, inventory.CheckSufficiency(10, 11), domain.ErrInsufficientStock)
	assert.ErrorIs(t, inventory.CheckSufficiency(-2, 1), domain.ErrInsufficientStock)
}
