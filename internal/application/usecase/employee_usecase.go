package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	appinventory "github.com/jhoicas/warehouse-pos/internal/application/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// EmployeeUseCase alta y edición de empleados (usuario + perfil) con secciones de acceso.
type EmployeeUseCase struct {
	tx        appinventory.TxRunner
	employees repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(tx appinventory.TxRunner, employees repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{tx: tx, employees: employees}
}

// Create crea usuario y empleado. Sin secciones explícitas aplica el preset del cargo.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 6 || !entity.ValidPosition(in.Position) {
		return nil, domain.ErrInvalidInput
	}
	warehouseID := in.WarehouseID
	if warehouseID == "" && !actor.IsSuperuser {
		warehouseID = actor.WarehouseID
	}
	if !actor.CanManage(warehouseID) {
		return nil, fmt.Errorf("%w: bodega fuera de su alcance", domain.ErrForbidden)
	}
	sections, err := resolveSections(in.Position, in.Sections)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
	}
	emp := &entity.Employee{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		FullName:    strings.TrimSpace(in.FullName),
		Position:    in.Position,
		Status:      entity.EmployeeActive,
		WarehouseID: warehouseID,
		Sections:    sections,
		CreatedAt:   now,
	}
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := ensureWarehouse(ctx, r.Warehouses, emp.WarehouseID); err != nil {
			return err
		}
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		if err := r.Employees.Create(ctx, emp); err != nil {
			return err
		}
		return r.Activity.Create(ctx, appinventory.NewActivity(actor, "Сотрудник создан", "employee", emp.ID,
			fmt.Sprintf("%s (%s)", emp.FullName, emp.Position)))
	})
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(emp)
	resp.Username = user.Username
	return resp, nil
}

// Update aplica cambios. Si cambia el cargo y no se envían secciones se aplica el nuevo preset.
// El estado se replica en users.is_active: un empleado bloqueado pierde la sesión.
func (uc *EmployeeUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	var emp *entity.Employee
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		emp, err = r.Employees.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if emp == nil {
			return domain.ErrNotFound
		}
		if !actor.CanManage(emp.WarehouseID) {
			return fmt.Errorf("%w: empleado de otra bodega", domain.ErrForbidden)
		}
		if in.FullName != nil {
			emp.FullName = strings.TrimSpace(*in.FullName)
		}
		if in.Position != nil {
			if !entity.ValidPosition(*in.Position) {
				return domain.ErrInvalidInput
			}
			if *in.Position != emp.Position && in.Sections == nil {
				emp.Sections = entity.PresetSections(*in.Position)
			}
			emp.Position = *in.Position
		}
		if in.Status != nil {
			if *in.Status != entity.EmployeeActive && *in.Status != entity.EmployeeBlocked {
				return domain.ErrInvalidInput
			}
			if *in.Status != emp.Status {
				if err := r.Users.SetActive(ctx, emp.UserID, *in.Status == entity.EmployeeActive); err != nil {
					return err
				}
			}
			emp.Status = *in.Status
		}
		if in.WarehouseID != nil {
			if !actor.CanManage(*in.WarehouseID) {
				return fmt.Errorf("%w: bodega fuera de su alcance", domain.ErrForbidden)
			}
			if err := ensureWarehouse(ctx, r.Warehouses, *in.WarehouseID); err != nil {
				return err
			}
			emp.WarehouseID = *in.WarehouseID
		}
		if in.Sections != nil {
			sections, err := resolveSections(emp.Position, *in.Sections)
			if err != nil {
				return err
			}
			emp.Sections = sections
		}
		if in.Password != nil {
			if len(*in.Password) < 6 {
				return domain.ErrInvalidInput
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			if err := r.Users.UpdatePassword(ctx, emp.UserID, string(hash)); err != nil {
				return err
			}
		}
		if err := r.Employees.Update(ctx, emp); err != nil {
			return err
		}
		return r.Activity.Create(ctx, appinventory.NewActivity(actor, "Сотрудник изменен", "employee", emp.ID,
			fmt.Sprintf("%s (%s, %s)", emp.FullName, emp.Position, emp.Status)))
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(emp), nil
}

// List lista empleados; un empleado con bodega solo ve los de su bodega.
func (uc *EmployeeUseCase) List(ctx context.Context, actor entity.Actor, warehouseID string, limit, offset int) (*dto.EmployeeListResponse, error) {
	list, err := uc.employees.List(ctx, actor.ScopeWarehouse(warehouseID), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// resolveSections valida los slugs; vacío = preset del cargo.
func resolveSections(position string, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return entity.PresetSections(position), nil
	}
	seen := make(map[string]bool, len(requested))
	out := make([]string, 0, len(requested))
	for _, slug := range requested {
		if !entity.ValidSection(slug) {
			return nil, fmt.Errorf("%w: sección %q", domain.ErrInvalidInput, slug)
		}
		if seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out, nil
}

func ensureWarehouse(ctx context.Context, repo repository.WarehouseRepository, id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: warehouse_id no es un UUID", domain.ErrInvalidInput)
	}
	w, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	sections := e.Sections
	if sections == nil {
		sections = []string{}
	}
	return &dto.EmployeeResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		FullName:    e.FullName,
		Position:    e.Position,
		Status:      e.Status,
		WarehouseID: e.WarehouseID,
		Sections:    sections,
		CreatedAt:   e.CreatedAt,
	}
}
