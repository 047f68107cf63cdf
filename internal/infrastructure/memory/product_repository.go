package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/estoque-eletronicos/internal/domain"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/entity"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. Devuelve copias: el llamador no comparte punteros con el Store.
type ProductRepo struct {
	v view
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.NewValidationError("producto %s ya existe", p.ID)
		}
		st.products[p.ID] = copyProduct(*p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			c := copyProduct(p)
			out = &c
		}
	})
	return out, nil
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el Store en exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := copyProduct(*p)
		next.CurrentStock = cur.CurrentStock
		next.CreatedAt = cur.CreatedAt
		st.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepo) AdjustStock(_ context.Context, id string, delta int, at time.Time) (int, error) {
	var stock int
	err := r.v.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.CurrentStock += delta
		p.UpdatedAt = at
		st.products[id] = p
		stock = p.CurrentStock
		return nil
	})
	return stock, err
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	r.v.read(func(st *state) {
		for _, p := range st.products {
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			c := copyProduct(p)
			list = append(list, &c)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Delete elimina el producto junto con sus movimientos.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.products, id)
		for mid, m := range st.movements {
			if m.ProductID == id {
				delete(st.movements, mid)
			}
		}
		return nil
	})
}

func copyProduct(p entity.Product) entity.Product {
	if p.UnitPrice != nil {
		price := *p.UnitPrice
		p.UnitPrice = &price
	}
	return p
}
