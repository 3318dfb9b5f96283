package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

var (
	_ repository.IncomingRepository = (*IncomingRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
)

// operationFKError traduce violaciones de FK de ingresos y traslados.
func operationFKError(err error, op string) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: producto o bodega inexistente", domain.ErrNotFound)
	}
	if pgCode(err) == "23514" && constraintName(err) == "movements_distinct_warehouses" {
		return domain.ErrSameWarehouse
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IncomingRepo ingresos de mercancía.
type IncomingRepo struct {
	q Querier
}

// NewIncomingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIncomingRepository(q Querier) *IncomingRepo {
	return &IncomingRepo{q: q}
}

func (r *IncomingRepo) Create(ctx context.Context, in *entity.Incoming) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO incoming (id, product_id, warehouse_id, quantity, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		in.ID, in.ProductID, in.WarehouseID, in.Quantity, in.Date, nullable(in.CreatedBy),
	)
	if err != nil {
		return operationFKError(err, "insert incoming")
	}
	return nil
}

func (r *IncomingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Incoming, error) {
	var (
		in        entity.Incoming
		createdBy *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, product_id, warehouse_id, quantity, date, created_by
		FROM incoming WHERE id = $1 FOR UPDATE`, id,
	).Scan(&in.ID, &in.ProductID, &in.WarehouseID, &in.Quantity, &in.Date, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get incoming: %w", err)
	}
	in.CreatedBy = deref(createdBy)
	return &in, nil
}

func (r *IncomingRepo) Update(ctx context.Context, in *entity.Incoming) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE incoming SET product_id = $2, warehouse_id = $3, quantity = $4, date = $5 WHERE id = $1`,
		in.ID, in.ProductID, in.WarehouseID, in.Quantity, in.Date,
	)
	if err != nil {
		return operationFKError(err, "update incoming")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IncomingRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM incoming WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete incoming: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List más recientes primero.
func (r *IncomingRepo) List(ctx context.Context, f repository.OperationFilter) ([]*entity.IncomingView, error) {
	w := &where{}
	if f.WarehouseID != "" {
		w.add("i.warehouse_id = ?", f.WarehouseID)
	}
	w.dateRange("i.date", f.From, f.To)
	query := `
		SELECT i.id, i.product_id, i.warehouse_id, i.quantity, i.date, i.created_by, p.name, wh.name
		FROM incoming i
		JOIN products p ON p.id = i.product_id
		JOIN warehouses wh ON wh.id = i.warehouse_id` +
		w.sql() + ` ORDER BY i.date DESC, i.id` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list incoming: %w", err)
	}
	defer rows.Close()
	list := []*entity.IncomingView{}
	for rows.Next() {
		var (
			v         entity.IncomingView
			createdBy *string
		)
		if err := rows.Scan(&v.ID, &v.ProductID, &v.WarehouseID, &v.Quantity, &v.Date, &createdBy,
			&v.ProductName, &v.WarehouseName); err != nil {
			return nil, fmt.Errorf("scan incoming: %w", err)
		}
		v.CreatedBy = deref(createdBy)
		list = append(list, &v)
	}
	return list, rows.Err()
}

// MovementRepo traslados entre bodegas.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.FromWarehouseID == m.ToWarehouseID {
		return domain.ErrSameWarehouse
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO movements (id, product_id, from_warehouse_id, to_warehouse_id, quantity, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProductID, m.FromWarehouseID, m.ToWarehouseID, m.Quantity, m.Date, nullable(m.CreatedBy),
	)
	if err != nil {
		return operationFKError(err, "insert movement")
	}
	return nil
}

func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	var (
		m         entity.Movement
		createdBy *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, product_id, from_warehouse_id, to_warehouse_id, quantity, date, created_by
		FROM movements WHERE id = $1 FOR UPDATE`, id,
	).Scan(&m.ID, &m.ProductID, &m.FromWarehouseID, &m.ToWarehouseID, &m.Quantity, &m.Date, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.CreatedBy = deref(createdBy)
	return &m, nil
}

func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	if m.FromWarehouseID == m.ToWarehouseID {
		return domain.ErrSameWarehouse
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE movements SET product_id = $2, from_warehouse_id = $3, to_warehouse_id = $4, quantity = $5, date = $6
		WHERE id = $1`,
		m.ID, m.ProductID, m.FromWarehouseID, m.ToWarehouseID, m.Quantity, m.Date,
	)
	if err != nil {
		return operationFKError(err, "update movement")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List traslados que salen o entran a la bodega del filtro, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.OperationFilter) ([]*entity.MovementView, error) {
	w := &where{}
	if f.WarehouseID != "" {
		w.add("(m.from_warehouse_id = ? OR m.to_warehouse_id = ?)", f.WarehouseID, f.WarehouseID)
	}
	w.dateRange("m.date", f.From, f.To)
	query := `
		SELECT m.id, m.product_id, m.from_warehouse_id, m.to_warehouse_id, m.quantity, m.date, m.created_by,
			p.name, wf.name, wt.name
		FROM movements m
		JOIN products p ON p.id = m.product_id
		JOIN warehouses wf ON wf.id = m.from_warehouse_id
		JOIN warehouses wt ON wt.id = m.to_warehouse_id` +
		w.sql() + ` ORDER BY m.date DESC, m.id` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := []*entity.MovementView{}
	for rows.Next() {
		var (
			v         entity.MovementView
			createdBy *string
		)
		if err := rows.Scan(&v.ID, &v.ProductID, &v.FromWarehouseID, &v.ToWarehouseID, &v.Quantity, &v.Date, &createdBy,
			&v.ProductName, &v.FromWarehouseName, &v.ToWarehouseName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		v.CreatedBy = deref(createdBy)
		list = append(list, &v)
	}
	return list, rows.Err()
}
