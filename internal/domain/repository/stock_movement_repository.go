package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementTotals sumas de cantidades por tipo para un producto.
type MovementTotals struct {
	In  int
	Out int
}

// StockMovementRepository define el puerto de persistencia para movimientos.
// No existe Update: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List devuelve el historial ordenado por movement_date descendente.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovementDetail, error)
	// Count cuenta los movimientos que cumplen el filtro; ignora Limit y Offset.
	Count(ctx context.Context, filter MovementFilter) (int, error)
	TotalsByProduct(ctx context.Context, productID string) (MovementTotals, error)
}
