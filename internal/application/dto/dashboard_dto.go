package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts   int                `json:"total_products"`
	LowStockCount   int                `json:"low_stock_count"`
	TotalValue      decimal.Decimal    `json:"total_value"`
	LowStock        []LowStockAlert    `json:"low_stock"`
	RecentMovements []MovementResponse `json:"recent_movements"`
}
