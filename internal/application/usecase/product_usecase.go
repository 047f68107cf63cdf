package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
	"github.com/jhoicas/estoque-eletronicos/internal/application/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	domaininv "github.com/jhoicas/estoque-eletronicos/internal/domain/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

const (
	maxProductName   = 200
	initialStockNote = "estoque inicial"
)

// ProductUseCase casos de uso CRUD para productos. El stock se mueve solo vía movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, now: time.Now}
}

// Create crea un producto. Un current_stock inicial se registra como una entrada del
// usuario que crea el producto, así el contador sigue siendo Σ(entradas) − Σ(salidas).
func (uc *ProductUseCase) Create(ctx context.Context, callerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !entity.ValidCategory(in.Category) {
		return nil, domain.NewValidationError("category debe ser una de: %s", strings.Join(entity.Categories, ", "))
	}
	minimum := entity.DefaultMinimumStock
	if in.MinimumStock != nil {
		minimum = *in.MinimumStock
	}
	if minimum < 0 {
		return nil, domain.NewValidationError("minimum_stock no puede ser negativo")
	}
	initial := 0
	if in.CurrentStock != nil {
		initial = *in.CurrentStock
	}
	if initial < 0 {
		return nil, domain.NewValidationError("current_stock no puede ser negativo")
	}
	if err := validatePrice(in.UnitPrice); err != nil {
		return nil, err
	}

	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Category:     in.Category,
		Voltage:      strings.TrimSpace(in.Voltage),
		Resolution:   strings.TrimSpace(in.Resolution),
		Dimensions:   strings.TrimSpace(in.Dimensions),
		Storage:      strings.TrimSpace(in.Storage),
		Connectivity: strings.TrimSpace(in.Connectivity),
		MinimumStock: minimum,
		CurrentStock: 0,
		UnitPrice:    in.UnitPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if initial == 0 {
			return nil
		}
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			ActorID:      callerID,
			Type:         entity.MovementTypeIn,
			Quantity:     initial,
			MovementDate: now,
			Notes:        initialStockNote,
			CreatedAt:    now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		stock, err := productRepo.AdjustStock(ctx, product.ID, domaininv.StockDelta(mov.Type, mov.Quantity), now)
		if err != nil {
			return err
		}
		product.CurrentStock = stock
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Update aplica una actualización parcial. No permite modificar current_stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		product.Name = name
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, domain.NewValidationError("category debe ser una de: %s", strings.Join(entity.Categories, ", "))
		}
		product.Category = *in.Category
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.NewValidationError("minimum_stock no puede ser negativo")
		}
		product.MinimumStock = *in.MinimumStock
	}
	if in.ClearPrice {
		product.UnitPrice = nil
	} else if in.UnitPrice != nil {
		if err := validatePrice(in.UnitPrice); err != nil {
			return nil, err
		}
		product.UnitPrice = in.UnitPrice
	}
	setTrimmed(&product.Description, in.Description)
	setTrimmed(&product.Voltage, in.Voltage)
	setTrimmed(&product.Resolution, in.Resolution)
	setTrimmed(&product.Dimensions, in.Dimensions)
	setTrimmed(&product.Storage, in.Storage)
	setTrimmed(&product.Connectivity, in.Connectivity)
	product.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// List devuelve el catálogo filtrado y la notificación de stock bajo de esta lectura.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	if q.Category != "" && !entity.ValidCategory(q.Category) {
		return nil, domain.NewValidationError("category debe ser una de: %s", strings.Join(entity.Categories, ", "))
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{Category: q.Category})
	if err != nil {
		return nil, err
	}
	// El aviso cubre todo el catálogo, no solo lo que dejan pasar los filtros.
	catalog := list
	if q.Category != "" {
		if catalog, err = uc.repo.List(ctx, repository.ProductFilter{}); err != nil {
			return nil, err
		}
	}
	filtered := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		if matchesSearch(q.Search, p.Name, p.Category) {
			filtered = append(filtered, p)
		}
	}
	items := make([]dto.ProductResponse, 0, len(filtered))
	for _, p := range filtered {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{
		Items:  items,
		Total:  len(items),
		Notice: lowStockNotice(domaininv.LowStock(catalog)),
	}, nil
}

// Delete elimina un producto; sus movimientos se eliminan en cascada.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// lowStockNotice arma el aviso con nombre y cantidad de cada producto en stock bajo; nil si no hay.
func lowStockNotice(low []*entity.Product) *dto.LowStockNotice {
	if len(low) == 0 {
		return nil
	}
	parts := make([]string, 0, len(low))
	for _, p := range low {
		parts = append(parts, fmt.Sprintf("%s (%d)", p.Name, p.CurrentStock))
	}
	return &dto.LowStockNotice{
		Message: fmt.Sprintf("stock bajo en %d producto(s): %s", len(low), strings.Join(parts, ", ")),
		Items:   dto.LowStockAlerts(low),
	}
}

func validateName(name string) error {
	if name == "" {
		return domain.NewValidationError("name es requerido")
	}
	if utf8.RuneCountInString(name) > maxProductName {
		return domain.NewValidationError("name admite como máximo %d caracteres", maxProductName)
	}
	return nil
}

func validatePrice(p *decimal.Decimal) error {
	if p != nil && p.IsNegative() {
		return domain.NewValidationError("unit_price no puede ser negativo")
	}
	return nil
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
