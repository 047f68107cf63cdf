package entity

import "time"

// Tipos de movimiento (valores persistidos en stock_movements.movement_type).
const (
	MovementTypeIn  = "entrada"
	MovementTypeOut = "saida"
)

// ValidMovementType indica si t es entrada o saida.
func ValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// StockMovement registro inmutable de una entrada o salida de stock.
// Quantity siempre es positiva; el signo lo da Type.
type StockMovement struct {
	ID           string
	ProductID    string
	ActorID      string // profiles.id de quien registró el movimiento
	Type         string
	Quantity     int
	MovementDate time.Time
	Notes        string
	CreatedAt    time.Time
}

// StockMovementDetail movimiento con datos de producto y actor para el historial.
type StockMovementDetail struct {
	StockMovement
	ProductName string
	ActorName   string
}
