package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// SaleRepo implementa repository.SaleRepository.
type SaleRepo struct{ v view }

var _ repository.SaleRepository = (*SaleRepo)(nil)

// NextReceiptNumber max + 1. Dentro de Run el mutex global hace de LOCK TABLE.
func (r *SaleRepo) NextReceiptNumber(_ context.Context) (int64, error) {
	var next int64
	err := r.v.do(func(st *state) error {
		var last int64
		for _, s := range st.sales {
			if s.ReceiptNumber > last {
				last = s.ReceiptNumber
			}
		}
		next = last + 1
		return nil
	})
	return next, err
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.v.do(func(st *state) error {
		for _, ex := range st.sales {
			if ex.ReceiptNumber == s.ReceiptNumber {
				return domain.ErrDuplicateReceipt
			}
		}
		cp := *s
		cp.Items = slices.Clone(s.Items)
		st.sales[s.ID] = cp
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.SaleView, error) {
	var out *entity.SaleView
	err := r.v.do(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = saleView(st, s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) List(_ context.Context, f repository.OperationFilter) ([]*entity.SaleView, error) {
	var out []*entity.SaleView
	err := r.v.do(func(st *state) error {
		all := make([]*entity.SaleView, 0, len(st.sales))
		for _, s := range filterSales(st, f) {
			all = append(all, saleView(st, s))
		}
		out = page(all, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *SaleRepo) ReportRows(_ context.Context, f repository.OperationFilter) ([]entity.SalesReportRow, error) {
	var out []entity.SalesReportRow
	err := r.v.do(func(st *state) error {
		for _, s := range filterSales(st, f) {
			for _, it := range s.Items {
				p := st.products[it.ProductID]
				out = append(out, entity.SalesReportRow{
					SaleID:        s.ID,
					ReceiptNumber: s.ReceiptNumber,
					Date:          s.CreatedAt,
					WarehouseName: st.warehouses[s.WarehouseID].Name,
					ProductName:   p.Name,
					Quantity:      it.Quantity,
					Price:         it.Price,
					Total:         it.Total,
					PurchasePrice: p.PurchasePrice,
					PaymentMethod: s.PaymentMethod,
					SaleTotal:     s.Total,
				})
			}
		}
		return nil
	})
	return out, err
}

// filterSales ventas del filtro, más recientes primero (desempate por número de recibo).
func filterSales(st *state, f repository.OperationFilter) []entity.Sale {
	out := make([]entity.Sale, 0, len(st.sales))
	for _, s := range st.sales {
		if f.WarehouseID != "" && s.WarehouseID != f.WarehouseID {
			continue
		}
		if !inRange(s.CreatedAt, f.From, f.To) {
			continue
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b entity.Sale) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ReceiptNumber - a.ReceiptNumber)
	})
	return out
}

func saleView(st *state, s entity.Sale) *entity.SaleView {
	names := make(map[string]string, len(s.Items))
	for _, it := range s.Items {
		names[it.ProductID] = st.products[it.ProductID].Name
	}
	s.Items = slices.Clone(s.Items)
	return &entity.SaleView{
		Sale:           s,
		WarehouseName:  st.warehouses[s.WarehouseID].Name,
		SellerUsername: st.users[s.SellerID].Username,
		ItemNames:      names,
	}
}
