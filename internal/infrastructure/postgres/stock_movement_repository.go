package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. Un producto o actor inexistente se informa como ErrNotFound.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, actor_id, movement_type, quantity, movement_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.ActorID, m.Type, m.Quantity, m.MovementDate, m.Notes, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return domain.NewValidationError("movimiento inválido: tipo o cantidad fuera de rango")
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT id, product_id, actor_id, movement_type, quantity, movement_date, notes, created_at
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.ActorID, &m.Type, &m.Quantity, &m.MovementDate, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List devuelve el historial con nombre de producto y de actor, más reciente primero.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovementDetail, error) {
	query := `
		SELECT m.id, m.product_id, m.actor_id, m.movement_type, m.quantity, m.movement_date, m.notes, m.created_at,
			p.name, COALESCE(pr.full_name, '')
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN profiles pr ON pr.id = m.actor_id
		WHERE TRUE`
	where, args, ok := movementWhere(filter)
	if !ok {
		return []*entity.StockMovementDetail{}, nil
	}
	query += where
	pos := len(args) + 1
	query += " ORDER BY m.movement_date DESC, m.created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovementDetail, 0)
	for rows.Next() {
		var d entity.StockMovementDetail
		if err := rows.Scan(&d.ID, &d.ProductID, &d.ActorID, &d.Type, &d.Quantity, &d.MovementDate,
			&d.Notes, &d.CreatedAt, &d.ProductName, &d.ActorName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Count cuenta los movimientos del filtro, sin paginar.
func (r *StockMovementRepo) Count(ctx context.Context, filter repository.MovementFilter) (int, error) {
	where, args, ok := movementWhere(filter)
	if !ok {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements m WHERE TRUE`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// movementWhere arma las condiciones AND del filtro. ok=false si el product_id no es un UUID.
func movementWhere(filter repository.MovementFilter) (string, []any, bool) {
	var where string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(" AND "+cond, len(args))
	}
	if filter.ProductID != "" {
		if !validID(filter.ProductID) {
			return "", nil, false
		}
		add("m.product_id = $%d", filter.ProductID)
	}
	if filter.Type != "" {
		add("m.movement_type = $%d", filter.Type)
	}
	if filter.From != nil {
		add("m.movement_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("m.movement_date <= $%d", *filter.To)
	}
	return where, args, true
}

// TotalsByProduct suma las cantidades de entradas y salidas de un producto.
func (r *StockMovementRepo) TotalsByProduct(ctx context.Context, productID string) (repository.MovementTotals, error) {
	var t repository.MovementTotals
	if !validID(productID) {
		return t, nil
	}
	err := r.q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'entrada'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'saida'), 0)
		FROM stock_movements WHERE product_id = $1`, productID,
	).Scan(&t.In, &t.Out)
	if err != nil {
		return t, fmt.Errorf("movement totals: %w", err)
	}
	return t, nil
}
