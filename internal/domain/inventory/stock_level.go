package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
)

// IsLowStock: current_stock <= minimum_stock (la igualdad cuenta como stock bajo).
func IsLowStock(p *entity.Product) bool {
	return p.CurrentStock <= p.MinimumStock
}

// LowStock filtra los productos con stock bajo preservando el orden recibido.
func LowStock(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if IsLowStock(p) {
			out = append(out, p)
		}
	}
	return out
}

// InventoryValue Σ(current_stock × unit_price). Un precio ausente vale 0.
func InventoryValue(products []*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		if p.UnitPrice == nil {
			continue
		}
		total = total.Add(p.UnitPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock))))
	}
	return total
}

// Stats agregados del catálogo completo.
type Stats struct {
	TotalProducts int
	LowStockCount int
	TotalValue    decimal.Decimal
	LowStock      []*entity.Product
}

// ComputeStats recalcula todo sobre el conjunto recibido; no hay mantenimiento incremental.
func ComputeStats(products []*entity.Product) Stats {
	low := LowStock(products)
	return Stats{
		TotalProducts: len(products),
		LowStockCount: len(low),
		TotalValue:    InventoryValue(products),
		LowStock:      low,
	}
}
