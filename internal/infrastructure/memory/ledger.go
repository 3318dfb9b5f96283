package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// StockRepo implementa repository.StockRepository. El bloqueo de fila lo da el mutex de Run.
type StockRepo struct{ v view }

var _ repository.StockRepository = (*StockRepo)(nil)

func (r *StockRepo) LockOrCreate(_ context.Context, key inventory.StockKey) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.v.do(func(st *state) error {
		s, ok := st.stocks[key]
		if !ok {
			s = entity.Stock{WarehouseID: key.WarehouseID, ProductID: key.ProductID, UpdatedAt: time.Now()}
			st.stocks[key] = s
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *StockRepo) Save(_ context.Context, s *entity.Stock) error {
	return r.v.do(func(st *state) error {
		st.stocks[inventory.StockKey{WarehouseID: s.WarehouseID, ProductID: s.ProductID}] = *s
		return nil
	})
}

func (r *StockRepo) Get(_ context.Context, key inventory.StockKey) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.v.do(func(st *state) error {
		s, ok := st.stocks[key]
		if !ok {
			s = entity.Stock{WarehouseID: key.WarehouseID, ProductID: key.ProductID}
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *StockRepo) List(_ context.Context, f repository.StockFilter) ([]*entity.StockView, error) {
	var out []*entity.StockView
	err := r.v.do(func(st *state) error {
		all := make([]*entity.StockView, 0, len(st.stocks))
		for key, s := range st.stocks {
			if f.WarehouseID != "" && key.WarehouseID != f.WarehouseID {
				continue
			}
			if f.ProductID != "" && key.ProductID != f.ProductID {
				continue
			}
			p := st.products[key.ProductID]
			all = append(all, &entity.StockView{
				Stock:         s,
				WarehouseName: st.warehouses[key.WarehouseID].Name,
				ProductName:   p.Name,
				CategoryName:  st.categories[p.CategoryID].Name,
			})
		}
		slices.SortFunc(all, func(a, b *entity.StockView) int {
			if c := strings.Compare(a.WarehouseName, b.WarehouseName); c != 0 {
				return c
			}
			return strings.Compare(a.ProductName, b.ProductName)
		})
		out = page(all, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *StockRepo) QuantitiesByWarehouse(_ context.Context, warehouseID string) (map[string]int64, error) {
	out := map[string]int64{}
	err := r.v.do(func(st *state) error {
		for key, s := range st.stocks {
			if key.WarehouseID == warehouseID {
				out[key.ProductID] = s.Quantity
			}
		}
		return nil
	})
	return out, err
}

// IncomingRepo implementa repository.IncomingRepository.
type IncomingRepo struct{ v view }

var _ repository.IncomingRepository = (*IncomingRepo)(nil)

func (r *IncomingRepo) Create(_ context.Context, in *entity.Incoming) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.incoming[in.ID]; ok {
			return domain.ErrDuplicate
		}
		st.incoming[in.ID] = *in
		return nil
	})
}

func (r *IncomingRepo) GetForUpdate(_ context.Context, id string) (*entity.Incoming, error) {
	var out *entity.Incoming
	err := r.v.do(func(st *state) error {
		if in, ok := st.incoming[id]; ok {
			out = &in
		}
		return nil
	})
	return out, err
}

func (r *IncomingRepo) Update(_ context.Context, in *entity.Incoming) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.incoming[in.ID]; !ok {
			return domain.ErrNotFound
		}
		st.incoming[in.ID] = *in
		return nil
	})
}

func (r *IncomingRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.incoming[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.incoming, id)
		return nil
	})
}

func (r *IncomingRepo) List(_ context.Context, f repository.OperationFilter) ([]*entity.IncomingView, error) {
	var out []*entity.IncomingView
	err := r.v.do(func(st *state) error {
		all := make([]*entity.IncomingView, 0, len(st.incoming))
		for _, in := range st.incoming {
			if f.WarehouseID != "" && in.WarehouseID != f.WarehouseID {
				continue
			}
			if !inRange(in.Date, f.From, f.To) {
				continue
			}
			all = append(all, &entity.IncomingView{
				Incoming:      in,
				ProductName:   st.products[in.ProductID].Name,
				WarehouseName: st.warehouses[in.WarehouseID].Name,
			})
		}
		slices.SortFunc(all, func(a, b *entity.IncomingView) int { return b.Date.Compare(a.Date) })
		out = page(all, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

// MovementRepo implementa repository.MovementRepository.
type MovementRepo struct{ v view }

var _ repository.MovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.v.do(func(st *state) error {
		if m.FromWarehouseID == m.ToWarehouseID {
			return domain.ErrSameWarehouse
		}
		if _, ok := st.movements[m.ID]; ok {
			return domain.ErrDuplicate
		}
		st.movements[m.ID] = *m
		return nil
	})
}

func (r *MovementRepo) GetForUpdate(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.v.do(func(st *state) error {
		if m, ok := st.movements[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) Update(_ context.Context, m *entity.Movement) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.movements[m.ID]; !ok {
			return domain.ErrNotFound
		}
		if m.FromWarehouseID == m.ToWarehouseID {
			return domain.ErrSameWarehouse
		}
		st.movements[m.ID] = *m
		return nil
	})
}

func (r *MovementRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.movements[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.movements, id)
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, f repository.OperationFilter) ([]*entity.MovementView, error) {
	var out []*entity.MovementView
	err := r.v.do(func(st *state) error {
		all := make([]*entity.MovementView, 0, len(st.movements))
		for _, m := range st.movements {
			if f.WarehouseID != "" && m.FromWarehouseID != f.WarehouseID && m.ToWarehouseID != f.WarehouseID {
				continue
			}
			if !inRange(m.Date, f.From, f.To) {
				continue
			}
			all = append(all, &entity.MovementView{
				Movement:          m,
				ProductName:       st.products[m.ProductID].Name,
				FromWarehouseName: st.warehouses[m.FromWarehouseID].Name,
				ToWarehouseName:   st.warehouses[m.ToWarehouseID].Name,
			})
		}
		slices.SortFunc(all, func(a, b *entity.MovementView) int { return b.Date.Compare(a.Date) })
		out = page(all, f.Limit, f.Offset)
		return nil
	})
	return out, err
}
