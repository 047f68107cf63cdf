package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas (valores persistidos en products.category).
const (
	CategorySmartphone = "smartphone"
	CategoryNotebook   = "notebook"
	CategorySmartTV    = "smart_tv"
	CategoryOther      = "outros"
)

// DefaultMinimumStock umbral de stock mínimo cuando no se informa.
const DefaultMinimumStock = 10

// Categories lista ordenada de categorías aceptadas.
var Categories = []string{CategorySmartphone, CategoryNotebook, CategorySmartTV, CategoryOther}

// ValidCategory indica si c pertenece al conjunto fijo de categorías.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product representa un equipo electrónico del catálogo.
// CurrentStock solo se modifica mediante movimientos (regla del ledger); nunca por Update.
type Product struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Voltage      string
	Resolution   string
	Dimensions   string
	Storage      string
	Connectivity string
	MinimumStock int
	CurrentStock int
	UnitPrice    *decimal.Decimal // opcional; nil cuenta como 0 en la valorización
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
