// Package inventory contiene los servicios de dominio del stock: la regla del ledger,
// la evaluación de stock bajo y la valorización del inventario.
package inventory

import (
	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
)

// StockDelta implementa la regla del ledger: entrada suma, saida resta.
// Cualquier otro tipo no tiene efecto (el constraint de la tabla lo vuelve inalcanzable).
func StockDelta(movementType string, quantity int) int {
	switch movementType {
	case entity.MovementTypeIn:
		return quantity
	case entity.MovementTypeOut:
		return -quantity
	default:
		return 0
	}
}

// Replay recalcula el stock desde cero: Σ(entradas) − Σ(salidas).
func Replay(movements []entity.StockMovement) int {
	total := 0
	for _, m := range movements {
		total += StockDelta(m.Type, m.Quantity)
	}
	return total
}

// CheckSufficiency es la verificación consultiva previa a una salida.
// Usa el stock leído por el llamador, que puede estar desactualizado.
func CheckSufficiency(currentStock, requested int) error {
	if requested > currentStock {
		return domain.ErrInsufficientStock
	}
	return nil
}
