package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-eletronicos/internal/application/analytics"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/infrastructure/memory"
)

const actorID = "00000000-0000-0000-0000-000000000001"

func addProduct(t *testing.T, s *memory.Store, id string, stock, minimum int, price string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	p := &entity.Product{ID: id, Name: "produto " + id, Category: entity.CategoryOther, MinimumStock: minimum, CreatedAt: now}
	if price != "" {
		d := decimal.RequireFromString(price)
		p.UnitPrice = &d
	}
	require.NoError(t, s.Products().Create(ctx, p))
	if stock > 0 {
		_, err := s.Products().AdjustStock(ctx, id, stock, now)
		require.NoError(t, err)
		require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{
			ID: "mov-" + id, ProductID: id, ActorID: actorID, Type: entity.MovementTypeIn,
			Quantity: stock, MovementDate: now, CreatedAt: now,
		}))
	}
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: actorID, Email: "ana@example.com"}))
	require.NoError(t, s.Profiles().Create(ctx, &entity.Profile{ID: actorID, FullName: "Ana"}))

	addProduct(t, s, "a", 20, 10, "199.99")
	addProduct(t, s, "b", 3, 5, "1000")
	addProduct(t, s, "c", 7, 2, "")

	uc := analytics.NewDashboardUseCase(s.Products(), s.Movements())
	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 1, out.LowStockCount)
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, "b", out.LowStock[0].ProductID)
	// 20 × 199.99 + 3 × 1000; el producto sin precio suma 0.
	assert.True(t, decimal.RequireFromString("6999.80").Equal(out.TotalValue), out.TotalValue.String())
	assert.Len(t, out.RecentMovements, 3)
}

func TestGetSummary_CatalogoVacio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.New().Products(), memory.New().Movements())
	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalProducts)
	assert.True(t, out.TotalValue.IsZero())
	assert.Empty(t, out.LowStock)
	assert.NotNil(t, out.RecentMovements)
}
