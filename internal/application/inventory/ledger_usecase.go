package inventory

import (
	"context"

	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

// LedgerUseCase consultas de la vista de stock: historial, panel de stock bajo y conciliación.
type LedgerUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *LedgerUseCase {
	return &LedgerUseCase{movRepo: movRepo, productRepo: productRepo}
}

// ListMovements devuelve el historial más reciente primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	if q.MovementType != "" && !entity.ValidMovementType(q.MovementType) {
		return nil, domain.NewValidationError("movement_type debe ser %q o %q", entity.MovementTypeIn, entity.MovementTypeOut)
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, domain.NewValidationError("from no puede ser posterior a to")
	}
	q.DefaultPage()
	filter := repository.MovementFilter{
		ProductID: q.ProductID,
		Type:      q.MovementType,
		From:      q.From,
		To:        q.To,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.FromMovementDetail(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// LowStockPanel lista los productos con current_stock <= minimum_stock.
func (uc *LedgerUseCase) LowStockPanel(ctx context.Context) ([]dto.LowStockAlert, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	return dto.LowStockAlerts(inventory.LowStock(products)), nil
}

// ReconcileProduct recalcula Σ(entradas) − Σ(salidas) y lo compara con el contador guardado.
func (uc *LedgerUseCase) ReconcileProduct(ctx context.Context, productID string) (*dto.LedgerCheckResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	totals, err := uc.movRepo.TotalsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	computed := totals.In - totals.Out
	return &dto.LedgerCheckResponse{
		ProductID:     product.ID,
		StoredStock:   product.CurrentStock,
		TotalIn:       totals.In,
		TotalOut:      totals.Out,
		ComputedStock: computed,
		Consistent:    computed == product.CurrentStock,
	}, nil
}
