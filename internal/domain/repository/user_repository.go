package repository

import (
	"context"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetActive(ctx context.Context, id string, active bool) error
}

// EmployeeRepository define el puerto de persistencia para Employee y sus secciones.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	// List filtra por bodega si warehouseID no está vacío.
	List(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Employee, error)
}

// SectionRepository catálogo de secciones de acceso.
type SectionRepository interface {
	Upsert(ctx context.Context, sections []entity.AccessSection) error
	List(ctx context.Context) ([]entity.AccessSection, error)
}
