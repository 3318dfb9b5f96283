package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// ActivityLogRepo registro de acciones.
type ActivityLogRepo struct {
	q Querier
}

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

func (r *ActivityLogRepo) Create(ctx context.Context, l *entity.ActivityLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO activity_logs (id, action, entity_type, entity_id, details, user_id, employee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.Action, l.EntityType, l.EntityID, l.Details, nullable(l.UserID), nullable(l.EmployeeID), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List más recientes primero; warehouseID filtra por la bodega del empleado que actuó.
func (r *ActivityLogRepo) List(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.ActivityLog, error) {
	w := &where{}
	if warehouseID != "" {
		w.add("e.warehouse_id = ?", warehouseID)
	}
	query := `
		SELECT l.id, l.action, l.entity_type, l.entity_id, l.details, l.user_id, COALESCE(u.username, ''),
			l.employee_id, l.created_at
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.user_id
		LEFT JOIN employees e ON e.id = l.employee_id` +
		w.sql() + ` ORDER BY l.created_at DESC` + w.page(limit, offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()
	list := []*entity.ActivityLog{}
	for rows.Next() {
		var (
			l                  entity.ActivityLog
			userID, employeeID *string
		)
		if err := rows.Scan(&l.ID, &l.Action, &l.EntityType, &l.EntityID, &l.Details, &userID, &l.Username,
			&employeeID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		l.UserID = deref(userID)
		l.EmployeeID = deref(employeeID)
		list = append(list, &l)
	}
	return list, rows.Err()
}
