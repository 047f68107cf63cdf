package dto

import (
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/inventory"
)

// FromProduct convierte la entidad en respuesta, calculando el flag de stock bajo.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Voltage:      p.Voltage,
		Resolution:   p.Resolution,
		Dimensions:   p.Dimensions,
		Storage:      p.Storage,
		Connectivity: p.Connectivity,
		MinimumStock: p.MinimumStock,
		CurrentStock: p.CurrentStock,
		UnitPrice:    p.UnitPrice,
		LowStock:     inventory.IsLowStock(p),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromMovement convierte un movimiento (sin datos de producto/actor).
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ActorID:      m.ActorID,
		MovementType: m.Type,
		Quantity:     m.Quantity,
		MovementDate: m.MovementDate,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}

// FromMovementDetail convierte un movimiento del historial.
func FromMovementDetail(d *entity.StockMovementDetail) MovementResponse {
	out := FromMovement(&d.StockMovement)
	out.ProductName = d.ProductName
	out.ActorName = d.ActorName
	return out
}

// FromProfile convierte un perfil.
func FromProfile(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// LowStockAlerts arma las líneas de alerta para productos con stock bajo.
func LowStockAlerts(products []*entity.Product) []LowStockAlert {
	out := make([]LowStockAlert, 0, len(products))
	for _, p := range products {
		out = append(out, LowStockAlert{
			ProductID:    p.ID,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinimumStock: p.MinimumStock,
		})
	}
	return out
}
