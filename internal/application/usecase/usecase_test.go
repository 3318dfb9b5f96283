package usecase_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/application/usecase"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/memory"
)

var admin = entity.Actor{UserID: "00000000-0000-0000-0000-0000000000aa", IsSuperuser: true}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateGeneraBarcode(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	categories := usecase.NewCategoryUseCase(s.Categories())
	products := usecase.NewProductUseCase(s.Repos().Products, s.Categories())

	cat, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: "Молочные"})
	require.NoError(t, err)
	assert.True(t, cat.IsActive)

	p, err := products.Create(ctx, dto.CreateProductRequest{
		Name:          "Молоко 1л",
		CategoryID:    cat.ID,
		PurchasePrice: decimal.RequireFromString("300.456"),
		SellingPrice:  decimal.RequireFromString("450"),
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{13}$`), p.Barcode)
	assert.Equal(t, "300.46", p.PurchasePrice.StringFixed(2))

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Молоко 1л", CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Кефир", CategoryID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := products.List(ctx, repository.ProductFilter{Search: "молоко"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, "Молочные", list.Items[0].CategoryName)
}

func TestProduct_UpdateYDelete(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	cat, err := usecase.NewCategoryUseCase(s.Categories()).Create(ctx, dto.CreateCategoryRequest{Name: "Хлеб"})
	require.NoError(t, err)
	products := usecase.NewProductUseCase(s.Repos().Products, s.Categories())

	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Батон", CategoryID: cat.ID, Barcode: "4870000000001"})
	require.NoError(t, err)
	assert.Equal(t, "4870000000001", p.Barcode)

	updated, err := products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("Батон нарезной")})
	require.NoError(t, err)
	assert.Equal(t, "Батон нарезной", updated.Name)

	_, err = products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, products.Delete(ctx, p.ID))
	_, err = products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouse_CreateGeneraCodigoYPerfil(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	uc := usecase.NewWarehouseUseCase(s.Repos().Warehouses)

	w, err := uc.Create(ctx, dto.CreateWarehouseRequest{Name: "Центральный", ManagerName: "Айгуль", Capacity: 500})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^WH-[A-Z2-9]{6}$`), w.Code)

	got, err := uc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Айгуль", got.ManagerName)
	assert.Equal(t, 500, got.Capacity)

	_, err = uc.Create(ctx, dto.CreateWarehouseRequest{Name: "Центральный"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	temp := true
	got, err = uc.Update(ctx, w.ID, dto.UpdateWarehouseRequest{TemperatureControlled: &temp})
	require.NoError(t, err)
	assert.True(t, got.TemperatureControlled)
	assert.Equal(t, "Айгуль", got.ManagerName, "los campos no enviados se conservan")
}

// ──────────────────────────────────────────────────────────────────────────────
// Empleados
// ──────────────────────────────────────────────────────────────────────────────

func TestEmployee_PresetPorCargo(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	uc := usecase.NewEmployeeUseCase(s, s.Repos().Employees)
	w, err := usecase.NewWarehouseUseCase(s.Repos().Warehouses).Create(ctx, dto.CreateWarehouseRequest{Name: "A"})
	require.NoError(t, err)

	emp, err := uc.Create(ctx, admin, dto.CreateEmployeeRequest{
		Username: "cashier1", Password: "secret1", FullName: "Иван", Position: entity.PositionCashier, WarehouseID: w.ID,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.SectionSales, entity.SectionStocks}, emp.Sections)
	assert.Equal(t, entity.EmployeeActive, emp.Status)
	assert.Equal(t, "cashier1", emp.Username)

	// cambio de cargo sin secciones explícitas: nuevo preset
	emp, err = uc.Update(ctx, admin, emp.ID, dto.UpdateEmployeeRequest{Position: strPtr(entity.PositionStorekeeper)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.SectionIncoming, entity.SectionMovements}, emp.Sections)

	custom := []string{entity.SectionOrders, entity.SectionOrders, entity.SectionLogs}
	emp, err = uc.Update(ctx, admin, emp.ID, dto.UpdateEmployeeRequest{Sections: &custom})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.SectionOrders, entity.SectionLogs}, emp.Sections)

	bad := []string{"billing"}
	_, err = uc.Update(ctx, admin, emp.ID, dto.UpdateEmployeeRequest{Sections: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, admin, dto.CreateEmployeeRequest{Username: "cashier1", Password: "secret1", FullName: "Дубль", Position: entity.PositionCashier})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEmployee_ListPorBodega(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	uc := usecase.NewEmployeeUseCase(s, s.Repos().Employees)
	warehouses := usecase.NewWarehouseUseCase(s.Repos().Warehouses)
	a, err := warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "A"})
	require.NoError(t, err)
	b, err := warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "B"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, admin, dto.CreateEmployeeRequest{Username: "u1", Password: "secret1", FullName: "A1", Position: "admin", WarehouseID: a.ID})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateEmployeeRequest{Username: "u2", Password: "secret1", FullName: "B1", Position: "admin", WarehouseID: b.ID})
	require.NoError(t, err)

	all, err := uc.List(ctx, admin, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	scoped, err := uc.List(ctx, entity.Actor{UserID: "x", EmployeeID: "y", WarehouseID: a.ID}, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, scoped.Items, 1)
	assert.Equal(t, "A1", scoped.Items[0].FullName)
}

func TestEmployee_AlcancePorBodega(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	uc := usecase.NewEmployeeUseCase(s, s.Repos().Employees)
	warehouses := usecase.NewWarehouseUseCase(s.Repos().Warehouses)
	a, err := warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "A"})
	require.NoError(t, err)
	b, err := warehouses.Create(ctx, dto.CreateWarehouseRequest{Name: "B"})
	require.NoError(t, err)

	ea, err := uc.Create(ctx, admin, dto.CreateEmployeeRequest{Username: "ua", Password: "secret1", FullName: "A1", Position: "admin", WarehouseID: a.ID})
	require.NoError(t, err)
	eb, err := uc.Create(ctx, admin, dto.CreateEmployeeRequest{Username: "ub", Password: "secret1", FullName: "B1", Position: "cashier", WarehouseID: b.ID})
	require.NoError(t, err)
	actorA := entity.Actor{UserID: ea.UserID, EmployeeID: ea.ID, WarehouseID: a.ID}

	// empleado de otra bodega: ni bloqueo ni cambio de contraseña
	_, err = uc.Update(ctx, actorA, eb.ID, dto.UpdateEmployeeRequest{Status: strPtr(entity.EmployeeBlocked), Password: strPtr("hijack1")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	other, err := s.Repos().Employees.GetByID(ctx, eb.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EmployeeActive, other.Status)

	// no puede moverse a sí mismo a otra bodega
	_, err = uc.Update(ctx, actorA, ea.ID, dto.UpdateEmployeeRequest{WarehouseID: strPtr(b.ID)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	self, err := s.Repos().Employees.GetByID(ctx, ea.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, self.WarehouseID)

	// alta: otra bodega prohibida, sin bodega hereda la del actor
	_, err = uc.Create(ctx, actorA, dto.CreateEmployeeRequest{Username: "ub2", Password: "secret1", FullName: "B2", Position: "cashier", WarehouseID: b.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	hired, err := uc.Create(ctx, actorA, dto.CreateEmployeeRequest{Username: "ua2", Password: "secret1", FullName: "A2", Position: "cashier"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, hired.WarehouseID)

	// dentro de su bodega sí edita
	upd, err := uc.Update(ctx, actorA, hired.ID, dto.UpdateEmployeeRequest{FullName: strPtr("A2 bis")})
	require.NoError(t, err)
	assert.Equal(t, "A2 bis", upd.FullName)
}

func TestEmployee_BloqueoDesactivaUsuario(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	uc := usecase.NewEmployeeUseCase(s, s.Repos().Employees)
	emp, err := uc.Create(ctx, admin, dto.CreateEmployeeRequest{Username: "cajero", Password: "secret1", FullName: "C", Position: "cashier"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, admin, emp.ID, dto.UpdateEmployeeRequest{Status: strPtr(entity.EmployeeBlocked)})
	require.NoError(t, err)
	u, err := s.Repos().Users.GetByID(ctx, emp.UserID)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	_, err = uc.Update(ctx, admin, emp.ID, dto.UpdateEmployeeRequest{Status: strPtr(entity.EmployeeActive)})
	require.NoError(t, err)
	u, err = s.Repos().Users.GetByID(ctx, emp.UserID)
	require.NoError(t, err)
	assert.True(t, u.IsActive)
}

func TestSectionService_SetupIdempotente(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	svc := usecase.NewSectionService(s.Sections())

	n, err := svc.Setup(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(entity.DefaultSections), n)
	_, err = svc.Setup(ctx)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(entity.DefaultSections))
}
