package inventory

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
	"github.com/jhoicas/estoque-eletronicos/pkg/logger"
)

const maxNotesLength = 500

// Options ajustes del registro de movimientos.
type Options struct {
	// EnforceNonNegative bloquea la fila del producto y rechaza salidas que dejarían stock negativo.
	// Apagado, el único chequeo de suficiencia es el consultivo previo a la transacción.
	EnforceNonNegative bool
}

// RegisterMovementUseCase registra entradas/salidas: inserta el movimiento y ajusta
// current_stock del producto en una sola transacción.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	opts        Options
	log         *logger.Logger
	now         func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. log puede ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	log *logger.Logger,
	opts Options,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		opts:        opts,
		log:         log,
		now:         time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
// CallerID es la identidad autenticada; ActorID, si viene, debe ser igual a CallerID.
type MovementInputDTO struct {
	CallerID     string
	ActorID      string
	ProductID    string
	Type         string
	Quantity     int
	Notes        string
	MovementDate *time.Time
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, callerID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{
		CallerID:     callerID,
		ActorID:      in.ActorID,
		ProductID:    in.ProductID,
		Type:         in.MovementType,
		Quantity:     in.Quantity,
		Notes:        in.Notes,
		MovementDate: in.MovementDate,
	})
}

// RegisterMovement valida, aplica el chequeo consultivo de suficiencia y ejecuta
// "insertar movimiento + ajustar stock" como una unidad atómica.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.RegisterMovementResponse, error) {
	if input.CallerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if input.ActorID != "" && input.ActorID != input.CallerID {
		return nil, domain.ErrForbidden
	}
	if err := validateMovement(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	// Lectura fuera de la transacción: puede estar desactualizada frente a otras sesiones.
	if input.Type == entity.MovementTypeOut {
		if err := inventory.CheckSufficiency(product.CurrentStock, input.Quantity); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	date := now
	if input.MovementDate != nil && !input.MovementDate.IsZero() {
		date = *input.MovementDate
	}
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    input.ProductID,
		ActorID:      input.CallerID,
		Type:         input.Type,
		Quantity:     input.Quantity,
		MovementDate: date,
		Notes:        strings.TrimSpace(input.Notes),
		CreatedAt:    now,
	}

	var newStock int
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if uc.opts.EnforceNonNegative && mov.Type == entity.MovementTypeOut {
			locked, err := productRepo.GetForUpdate(ctx, mov.ProductID)
			if err != nil {
				return err
			}
			if locked == nil {
				return domain.ErrNotFound
			}
			if err := inventory.CheckSufficiency(locked.CurrentStock, mov.Quantity); err != nil {
				return err
			}
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		stock, err := productRepo.AdjustStock(ctx, mov.ProductID, inventory.StockDelta(mov.Type, mov.Quantity), now)
		if err != nil {
			return err
		}
		newStock = stock
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStock < 0 {
		uc.log.Warn().
			Str("product_id", mov.ProductID).
			Str("movement_id", mov.ID).
			Int("current_stock", newStock).
			Msg("stock negativo tras registrar salida")
	}

	product.CurrentStock = newStock
	return &dto.RegisterMovementResponse{
		Movement:     dto.FromMovement(mov),
		CurrentStock: newStock,
		LowStock:     inventory.IsLowStock(product),
	}, nil
}

func validateMovement(in MovementInputDTO) error {
	if strings.TrimSpace(in.ProductID) == "" {
		return domain.NewValidationError("product_id es requerido")
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.NewValidationError("movement_type debe ser %q o %q", entity.MovementTypeIn, entity.MovementTypeOut)
	}
	if in.Quantity <= 0 {
		return domain.NewValidationError("quantity debe ser mayor que cero")
	}
	if utf8.RuneCountInString(in.Notes) > maxNotesLength {
		return domain.NewValidationError("notes admite como máximo %d caracteres", maxNotesLength)
	}
	return nil
}
