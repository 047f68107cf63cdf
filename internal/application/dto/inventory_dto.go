package dto

import "time"

// RegisterMovementRequest body para POST /api/stock/movements.
// ActorID es opcional; si viene debe coincidir con el usuario autenticado.
type RegisterMovementRequest struct {
	ProductID    string     `json:"product_id"`
	MovementType string     `json:"movement_type"`
	Quantity     int        `json:"quantity"`
	Notes        string     `json:"notes"`
	MovementDate *time.Time `json:"movement_date,omitempty"`
	ActorID      string     `json:"actor_id,omitempty"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	ActorID      string    `json:"actor_id"`
	ActorName    string    `json:"actor_name,omitempty"`
	MovementType string    `json:"movement_type"`
	Quantity     int       `json:"quantity"`
	MovementDate time.Time `json:"movement_date"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterMovementResponse movimiento registrado y stock resultante del producto.
type RegisterMovementResponse struct {
	Movement     MovementResponse `json:"movement"`
	CurrentStock int              `json:"current_stock"`
	LowStock     bool             `json:"low_stock"`
}

// MovementListResponse historial paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementListQuery filtros de GET /api/stock/movements (armado por el handler).
type MovementListQuery struct {
	ProductID    string
	MovementType string
	From         *time.Time
	To           *time.Time
	PageRequest
}
