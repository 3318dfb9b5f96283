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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
// La bodega y su perfil se escriben en un solo batch.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega y su perfil.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse, profile *entity.WarehouseProfile) error {
	if profile == nil {
		profile = &entity.WarehouseProfile{}
	}
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO warehouses (id, name, location, code, created_at) VALUES ($1, $2, $3, $4, $5)`,
		w.ID, w.Name, w.Location, w.Code, w.CreatedAt)
	b.Queue(`
		INSERT INTO warehouse_profiles (warehouse_id, manager_name, contact_phone, capacity, temperature_controlled)
		VALUES ($1, $2, $3, $4, $5)`,
		w.ID, profile.ManagerName, profile.ContactPhone, profile.Capacity, profile.TemperatureControlled)
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	profile.WarehouseID = w.ID
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, `
		SELECT id, name, location, code, created_at FROM warehouses WHERE id = $1`, id,
	).Scan(&w.ID, &w.Name, &w.Location, &w.Code, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// GetProfile obtiene el perfil de la bodega. (nil, nil) si no existe.
func (r *WarehouseRepo) GetProfile(ctx context.Context, warehouseID string) (*entity.WarehouseProfile, error) {
	var p entity.WarehouseProfile
	err := r.q.QueryRow(ctx, `
		SELECT warehouse_id, manager_name, contact_phone, capacity, temperature_controlled
		FROM warehouse_profiles WHERE warehouse_id = $1`, warehouseID,
	).Scan(&p.WarehouseID, &p.ManagerName, &p.ContactPhone, &p.Capacity, &p.TemperatureControlled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse profile: %w", err)
	}
	return &p, nil
}

// Update actualiza la bodega y crea o actualiza su perfil.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse, profile *entity.WarehouseProfile) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE warehouses SET name = $2, location = $3 WHERE id = $1`, w.ID, w.Name, w.Location)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if profile == nil {
		return nil
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO warehouse_profiles (warehouse_id, manager_name, contact_phone, capacity, temperature_controlled)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (warehouse_id) DO UPDATE SET
			manager_name = EXCLUDED.manager_name,
			contact_phone = EXCLUDED.contact_phone,
			capacity = EXCLUDED.capacity,
			temperature_controlled = EXCLUDED.temperature_controlled`,
		w.ID, profile.ManagerName, profile.ContactPhone, profile.Capacity, profile.TemperatureControlled)
	if err != nil {
		return fmt.Errorf("upsert warehouse profile: %w", err)
	}
	return nil
}

// List bodegas con perfil y stock total almacenado.
func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.WarehouseSummary, error) {
	rows, err := r.q.Query(ctx, `
		SELECT w.id, w.name, w.location, w.code, w.created_at,
			COALESCE(p.manager_name, ''), COALESCE(p.contact_phone, ''), COALESCE(p.capacity, 0),
			COALESCE(p.temperature_controlled, FALSE), COALESCE(s.total, 0)
		FROM warehouses w
		LEFT JOIN warehouse_profiles p ON p.warehouse_id = w.id
		LEFT JOIN (SELECT warehouse_id, SUM(quantity)::bigint AS total FROM stocks GROUP BY warehouse_id) s ON s.warehouse_id = w.id
		ORDER BY w.name
		LIMIT $1 OFFSET $2`, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	list := []*entity.WarehouseSummary{}
	for rows.Next() {
		var s entity.WarehouseSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Code, &s.CreatedAt,
			&s.Profile.ManagerName, &s.Profile.ContactPhone, &s.Profile.Capacity,
			&s.Profile.TemperatureControlled, &s.TotalStock); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		s.Profile.WarehouseID = s.ID
		list = append(list, &s)
	}
	return list, rows.Err()
}
