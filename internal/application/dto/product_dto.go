package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// MinimumStock nil aplica el default (10); CurrentStock nil arranca en 0.
type CreateProductRequest struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Voltage      string           `json:"voltage"`
	Resolution   string           `json:"resolution"`
	Dimensions   string           `json:"dimensions"`
	Storage      string           `json:"storage"`
	Connectivity string           `json:"connectivity"`
	MinimumStock *int             `json:"minimum_stock"`
	CurrentStock *int             `json:"current_stock"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest actualización parcial. current_stock no es editable: se mueve solo con movimientos.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Voltage      *string          `json:"voltage"`
	Resolution   *string          `json:"resolution"`
	Dimensions   *string          `json:"dimensions"`
	Storage      *string          `json:"storage"`
	Connectivity *string          `json:"connectivity"`
	MinimumStock *int             `json:"minimum_stock"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	ClearPrice   bool             `json:"clear_unit_price"`
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}

// ProductResponse salida de un producto. LowStock se calcula en cada lectura.
type ProductResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Voltage      string           `json:"voltage,omitempty"`
	Resolution   string           `json:"resolution,omitempty"`
	Dimensions   string           `json:"dimensions,omitempty"`
	Storage      string           `json:"storage,omitempty"`
	Connectivity string           `json:"connectivity,omitempty"`
	MinimumStock int              `json:"minimum_stock"`
	CurrentStock int              `json:"current_stock"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	LowStock     bool             `json:"low_stock"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// LowStockAlert una línea de la notificación de stock bajo.
type LowStockAlert struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
}

// LowStockPanelResponse salida de GET /api/stock/low-stock.
type LowStockPanelResponse struct {
	Total int             `json:"total"`
	Items []LowStockAlert `json:"items"`
}

// LowStockNotice notificación emitida una vez por lectura del listado.
type LowStockNotice struct {
	Message string          `json:"message"`
	Items   []LowStockAlert `json:"items"`
}

// ProductListResponse listado completo (el catálogo es pequeño, sin paginación).
type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Total  int               `json:"total"`
	Notice *LowStockNotice   `json:"low_stock_notice,omitempty"`
}

// LedgerCheckResponse comparación entre el contador guardado y el recálculo desde movimientos.
type LedgerCheckResponse struct {
	ProductID     string `json:"product_id"`
	StoredStock   int    `json:"stored_stock"`
	TotalIn       int    `json:"total_in"`
	TotalOut      int    `json:"total_out"`
	ComputedStock int    `json:"computed_stock"`
	Consistent    bool   `json:"consistent"`
}
