// Package analytics contiene el caso de uso del Dashboard: estadísticas agregadas del catálogo.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

const dashboardRecentMovements = 5 // movimientos en el widget del dashboard

// DashboardUseCase recalcula las estadísticas sobre el catálogo completo en cada carga.
// No hay mantenimiento incremental: el catálogo es chico.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, movRepo: movRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos consultas en paralelo:
//  1. productos (para totales, stock bajo y valor)
//  2. últimos movimientos
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type movementsResult struct {
		list []*entity.StockMovementDetail
		err  error
	}

	productsCh := make(chan productsResult, 1)
	movementsCh := make(chan movementsResult, 1)

	go func() {
		list, err := uc.productRepo.List(ctx, repository.ProductFilter{})
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.movRepo.List(ctx, repository.MovementFilter{Limit: dashboardRecentMovements})
		movementsCh <- movementsResult{list, err}
	}()

	products := <-productsCh
	movements := <-movementsCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", movements.err)
	}

	stats := inventory.ComputeStats(products.list)
	recent := make([]dto.MovementResponse, 0, len(movements.list))
	for _, m := range movements.list {
		recent = append(recent, dto.FromMovementDetail(m))
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:   stats.TotalProducts,
		LowStockCount:   stats.LowStockCount,
		TotalValue:      stats.TotalValue.Round(2),
		LowStock:        dto.LowStockAlerts(stats.LowStock),
		RecentMovements: recent,
	}, nil
}
