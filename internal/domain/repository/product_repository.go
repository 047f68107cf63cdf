package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. Search se aplica en la capa de aplicación.
type ProductFilter struct {
	Category string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update persiste los datos descriptivos. No modifica current_stock.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta a current_stock de forma atómica, toca updated_at y devuelve el nuevo valor.
	AdjustStock(ctx context.Context, id string, delta int, at time.Time) (int, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Delete elimina el producto y, por cascada, sus movimientos. ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
