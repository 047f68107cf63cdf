package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos en memoria, con las mismas referencias que las FK de Postgres.
type StockMovementRepo struct {
	v view
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if !entity.ValidMovementType(m.Type) || m.Quantity <= 0 {
		return domain.NewValidationError("movimiento inválido: tipo o cantidad fuera de rango")
	}
	return r.v.write(func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.profiles[m.ActorID]; !ok {
			return domain.ErrNotFound
		}
		st.movements[m.ID] = *m
		return nil
	})
}

func (r *StockMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	r.v.read(func(st *state) {
		if m, ok := st.movements[id]; ok {
			out = &m
		}
	})
	return out, nil
}

func (r *StockMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovementDetail, error) {
	list := make([]*entity.StockMovementDetail, 0)
	r.v.read(func(st *state) {
		for _, m := range st.movements {
			if !matchesMovement(filter, m) {
				continue
			}
			d := &entity.StockMovementDetail{StockMovement: m}
			if p, ok := st.products[m.ProductID]; ok {
				d.ProductName = p.Name
			}
			if pr, ok := st.profiles[m.ActorID]; ok {
				d.ActorName = pr.FullName
			}
			list = append(list, d)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].MovementDate.Equal(list[j].MovementDate) {
			return list[i].MovementDate.After(list[j].MovementDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if filter.Limit > 0 {
		if filter.Offset >= len(list) {
			return []*entity.StockMovementDetail{}, nil
		}
		end := filter.Offset + filter.Limit
		if end > len(list) {
			end = len(list)
		}
		list = list[filter.Offset:end]
	}
	return list, nil
}

func (r *StockMovementRepo) Count(_ context.Context, filter repository.MovementFilter) (int, error) {
	n := 0
	r.v.read(func(st *state) {
		for _, m := range st.movements {
			if matchesMovement(filter, m) {
				n++
			}
		}
	})
	return n, nil
}

func matchesMovement(filter repository.MovementFilter, m entity.StockMovement) bool {
	switch {
	case filter.ProductID != "" && m.ProductID != filter.ProductID:
		return false
	case filter.Type != "" && m.Type != filter.Type:
		return false
	case filter.From != nil && m.MovementDate.Before(*filter.From):
		return false
	case filter.To != nil && m.MovementDate.After(*filter.To):
		return false
	}
	return true
}

func (r *StockMovementRepo) TotalsByProduct(_ context.Context, productID string) (repository.MovementTotals, error) {
	var t repository.MovementTotals
	r.v.read(func(st *state) {
		for _, m := range st.movements {
			if m.ProductID != productID {
				continue
			}
			switch m.Type {
			case entity.MovementTypeIn:
				t.In += m.Quantity
			case entity.MovementTypeOut:
				t.Out += m.Quantity
			}
		}
	})
	return t, nil
}
