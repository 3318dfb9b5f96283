package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
// Dentro de una tx, LockOrCreate toma el lock de fila; el orden lo impone el llamador.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// LockOrCreate asegura la fila (cantidad 0) y la bloquea con SELECT ... FOR UPDATE.
func (r *StockRepo) LockOrCreate(ctx context.Context, key inventory.StockKey) (*entity.Stock, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stocks (warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (warehouse_id, product_id) DO NOTHING`,
		key.WarehouseID, key.ProductID, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	s := entity.Stock{WarehouseID: key.WarehouseID, ProductID: key.ProductID}
	err = r.q.QueryRow(ctx, `
		SELECT quantity, updated_at FROM stocks
		WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`, key.WarehouseID, key.ProductID,
	).Scan(&s.Quantity, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("lock stock row: %w", err)
	}
	return &s, nil
}

// Save escribe la cantidad de una fila previamente bloqueada.
func (r *StockRepo) Save(ctx context.Context, s *entity.Stock) error {
	_, err := r.q.Exec(ctx, `
		UPDATE stocks SET quantity = $3, updated_at = $4 WHERE warehouse_id = $1 AND product_id = $2`,
		s.WarehouseID, s.ProductID, s.Quantity, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save stock: %w", err)
	}
	return nil
}

func (r *StockRepo) Get(ctx context.Context, key inventory.StockKey) (*entity.Stock, error) {
	s := entity.Stock{WarehouseID: key.WarehouseID, ProductID: key.ProductID}
	err := r.q.QueryRow(ctx, `
		SELECT quantity, updated_at FROM stocks WHERE warehouse_id = $1 AND product_id = $2`,
		key.WarehouseID, key.ProductID,
	).Scan(&s.Quantity, &s.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

func (r *StockRepo) List(ctx context.Context, f repository.StockFilter) ([]*entity.StockView, error) {
	w := &where{}
	if f.WarehouseID != "" {
		w.add("s.warehouse_id = ?", f.WarehouseID)
	}
	if f.ProductID != "" {
		w.add("s.product_id = ?", f.ProductID)
	}
	query := `
		SELECT s.warehouse_id, s.product_id, s.quantity, s.updated_at, wh.name, p.name, COALESCE(c.name, '')
		FROM stocks s
		JOIN warehouses wh ON wh.id = s.warehouse_id
		JOIN products p ON p.id = s.product_id
		LEFT JOIN categories c ON c.id = p.category_id` +
		w.sql() + ` ORDER BY wh.name, p.name` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockView{}
	for rows.Next() {
		var v entity.StockView
		if err := rows.Scan(&v.WarehouseID, &v.ProductID, &v.Quantity, &v.UpdatedAt,
			&v.WarehouseName, &v.ProductName, &v.CategoryName); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

func (r *StockRepo) QuantitiesByWarehouse(ctx context.Context, warehouseID string) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT product_id, quantity FROM stocks WHERE warehouse_id = $1`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("stock by warehouse: %w", err)
	}
	defer rows.Close()
	out := map[string]int64{}
	for rows.Next() {
		var (
			productID string
			qty       int64
		)
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out[productID] = qty
	}
	return out, rows.Err()
}
