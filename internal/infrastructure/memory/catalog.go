package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ v view }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.v.do(func(st *state) error {
		for _, ex := range st.categories {
			if strings.EqualFold(ex.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.do(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.categories[c.ID]; !ok {
			return domain.ErrNotFound
		}
		for id, ex := range st.categories {
			if id != c.ID && strings.EqualFold(ex.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.v.do(func(st *state) error {
		all := make([]*entity.Category, 0, len(st.categories))
		for _, c := range st.categories {
			all = append(all, &c)
		}
		slices.SortFunc(all, func(a, b *entity.Category) int { return strings.Compare(a.Name, b.Name) })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ v view }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func productConflict(st *state, p *entity.Product) error {
	for id, ex := range st.products {
		if id == p.ID {
			continue
		}
		if ex.Barcode == p.Barcode {
			return domain.ErrDuplicate
		}
		if ex.CategoryID == p.CategoryID && strings.EqualFold(ex.Name, p.Name) {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		if err := productConflict(st, p); err != nil {
			return err
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		for _, p := range st.products {
			if p.Barcode == barcode {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := productConflict(st, p); err != nil {
			return err
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, in := range st.incoming {
			if in.ProductID == id {
				return domain.ErrConflict
			}
		}
		for _, m := range st.movements {
			if m.ProductID == id {
				return domain.ErrConflict
			}
		}
		for _, s := range st.sales {
			for _, it := range s.Items {
				if it.ProductID == id {
					return domain.ErrConflict
				}
			}
		}
		for key := range st.stocks {
			if key.ProductID == id {
				delete(st.stocks, key)
			}
		}
		delete(st.products, id)
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.ProductSummary, error) {
	var out []*entity.ProductSummary
	err := r.v.do(func(st *state) error {
		totals := map[string]int64{}
		for key, s := range st.stocks {
			totals[key.ProductID] += s.Quantity
		}
		all := make([]*entity.ProductSummary, 0, len(st.products))
		for _, p := range st.products {
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.Search != "" && !containsFold(p.Name, f.Search) && !strings.Contains(p.Barcode, f.Search) {
				continue
			}
			all = append(all, &entity.ProductSummary{
				Product:      p,
				CategoryName: st.categories[p.CategoryID].Name,
				TotalStock:   totals[p.ID],
			})
		}
		slices.SortFunc(all, func(a, b *entity.ProductSummary) int { return strings.Compare(a.Name, b.Name) })
		out = page(all, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

// WarehouseRepo implementa repository.WarehouseRepository.
type WarehouseRepo struct{ v view }

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

func warehouseConflict(st *state, w *entity.Warehouse) error {
	for id, ex := range st.warehouses {
		if id != w.ID && (strings.EqualFold(ex.Name, w.Name) || ex.Code == w.Code) {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse, profile *entity.WarehouseProfile) error {
	return r.v.do(func(st *state) error {
		if err := warehouseConflict(st, w); err != nil {
			return err
		}
		st.warehouses[w.ID] = *w
		if profile != nil {
			p := *profile
			p.WarehouseID = w.ID
			st.profiles[w.ID] = p
		}
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.do(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) GetProfile(_ context.Context, warehouseID string) (*entity.WarehouseProfile, error) {
	var out *entity.WarehouseProfile
	err := r.v.do(func(st *state) error {
		if p, ok := st.profiles[warehouseID]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse, profile *entity.WarehouseProfile) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.warehouses[w.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := warehouseConflict(st, w); err != nil {
			return err
		}
		st.warehouses[w.ID] = *w
		if profile != nil {
			p := *profile
			p.WarehouseID = w.ID
			st.profiles[w.ID] = p
		}
		return nil
	})
}

func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.WarehouseSummary, error) {
	var out []*entity.WarehouseSummary
	err := r.v.do(func(st *state) error {
		totals := map[string]int64{}
		for key, s := range st.stocks {
			totals[key.WarehouseID] += s.Quantity
		}
		all := make([]*entity.WarehouseSummary, 0, len(st.warehouses))
		for _, w := range st.warehouses {
			all = append(all, &entity.WarehouseSummary{
				Warehouse:  w,
				Profile:    st.profiles[w.ID],
				TotalStock: totals[w.ID],
			})
		}
		slices.SortFunc(all, func(a, b *entity.WarehouseSummary) int { return strings.Compare(a.Name, b.Name) })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}
