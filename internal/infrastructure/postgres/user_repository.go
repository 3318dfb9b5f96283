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
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.SectionRepository  = (*SectionRepo)(nil)
)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, is_superuser, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Username, u.PasswordHash, u.IsSuperuser, u.IsActive, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE username = $1`, username)
}

func (r *UserRepo) getOne(ctx context.Context, cond string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, `
		SELECT id, username, password_hash, is_superuser, is_active, created_at FROM users `+cond, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsSuperuser, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EmployeeRepo empleados y sus secciones habilitadas (tabla employee_sections).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeSelect = `
	SELECT e.id, e.user_id, e.full_name, e.position, e.status, e.warehouse_id, e.created_at,
		COALESCE(ARRAY(SELECT es.section_slug FROM employee_sections es WHERE es.employee_id = e.id ORDER BY es.section_slug), '{}')
	FROM employees e`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var (
		e  entity.Employee
		wh *string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.FullName, &e.Position, &e.Status, &wh, &e.CreatedAt, &e.Sections); err != nil {
		return nil, err
	}
	e.WarehouseID = deref(wh)
	return &e, nil
}

// Create inserta el empleado y sus secciones. ErrDuplicate si el usuario ya tiene empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO employees (id, user_id, full_name, position, status, warehouse_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.FullName, e.Position, e.Status, nullable(e.WarehouseID), e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario o bodega inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return r.replaceSections(ctx, e.ID, e.Sections)
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) GetByUserID(ctx context.Context, userID string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, employeeSelect+` WHERE e.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by user: %w", err)
	}
	return e, nil
}

// Update reemplaza datos y secciones del empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE employees SET full_name = $2, position = $3, status = $4, warehouse_id = $5 WHERE id = $1`,
		e.ID, e.FullName, e.Position, e.Status, nullable(e.WarehouseID),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, e.WarehouseID)
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.replaceSections(ctx, e.ID, e.Sections)
}

func (r *EmployeeRepo) replaceSections(ctx context.Context, employeeID string, sections []string) error {
	b := &pgx.Batch{}
	b.Queue(`DELETE FROM employee_sections WHERE employee_id = $1`, employeeID)
	for _, slug := range sections {
		b.Queue(`INSERT INTO employee_sections (employee_id, section_slug) VALUES ($1, $2)`, employeeID, slug)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: sección desconocida, ejecute setup-sections", domain.ErrInvalidInput)
		}
		return fmt.Errorf("replace employee sections: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) List(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Employee, error) {
	w := &where{}
	if warehouseID != "" {
		w.add("e.warehouse_id = ?", warehouseID)
	}
	query := employeeSelect + w.sql() + ` ORDER BY e.full_name` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	list := []*entity.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// SectionRepo catálogo de secciones de acceso.
type SectionRepo struct {
	q Querier
}

// NewSectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSectionRepository(q Querier) *SectionRepo {
	return &SectionRepo{q: q}
}

// Upsert crea las secciones faltantes y renombra las existentes. Idempotente.
func (r *SectionRepo) Upsert(ctx context.Context, sections []entity.AccessSection) error {
	b := &pgx.Batch{}
	for i, s := range sections {
		b.Queue(`
			INSERT INTO access_sections (slug, name, position) VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, position = EXCLUDED.position`,
			s.Slug, s.Name, i)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("upsert sections: %w", err)
	}
	return nil
}

func (r *SectionRepo) List(ctx context.Context) ([]entity.AccessSection, error) {
	rows, err := r.q.Query(ctx, `SELECT slug, name FROM access_sections ORDER BY position, slug`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()
	var list []entity.AccessSection
	for rows.Next() {
		var s entity.AccessSection
		if err := rows.Scan(&s.Slug, &s.Name); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
