package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/memory"
)

func TestRun_RevierteTodoSiFalla(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	key := inventory.StockKey{WarehouseID: "w1", ProductID: "p1"}

	boom := errors.New("boom")
	err := s.Run(ctx, func(r repository.TxRepos) error {
		row, err := r.Stocks.LockOrCreate(ctx, key)
		require.NoError(t, err)
		row.Quantity = 7
		require.NoError(t, r.Stocks.Save(ctx, row))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Repos().Stocks.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Quantity)

	list, err := s.Repos().Stocks.List(ctx, repository.StockFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "la fila creada dentro de la transacción fallida no debe quedar")
}

func TestRun_ConfirmaSiNoHayError(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	key := inventory.StockKey{WarehouseID: "w1", ProductID: "p1"}

	require.NoError(t, s.Run(ctx, func(r repository.TxRepos) error {
		row, err := r.Stocks.LockOrCreate(ctx, key)
		if err != nil {
			return err
		}
		row.Quantity = 3
		return r.Stocks.Save(ctx, row)
	}))

	got, err := s.Repos().Stocks.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
}

func TestSaleRepo_NumeroDeReciboDuplicado(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()

	n, err := repos.Sales.NextReceiptNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "s1", ReceiptNumber: 1, Total: decimal.Zero}))
	err = repos.Sales.Create(ctx, &entity.Sale{ID: "s2", ReceiptNumber: 1, Total: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrDuplicateReceipt)

	n, err = repos.Sales.NextReceiptNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestProductRepo_Unicidad(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Молоко", CategoryID: "c1", Barcode: "111"}))

	err := repos.Products.Create(ctx, &entity.Product{ID: "p2", Name: "Кефир", CategoryID: "c1", Barcode: "111"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "barcode repetido")

	err = repos.Products.Create(ctx, &entity.Product{ID: "p3", Name: "Молоко", CategoryID: "c1", Barcode: "222"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "mismo nombre en la misma categoría")

	assert.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p4", Name: "Молоко", CategoryID: "c2", Barcode: "333"}))
}

func TestProductRepo_DeleteConOperacionesFalla(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "A", Barcode: "1"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", Name: "B", Barcode: "2"}))
	require.NoError(t, repos.Incoming.Create(ctx, &entity.Incoming{ID: "i1", ProductID: "p1", WarehouseID: "w1", Quantity: 1}))

	assert.ErrorIs(t, repos.Products.Delete(ctx, "p1"), domain.ErrConflict)
	assert.NoError(t, repos.Products.Delete(ctx, "p2"))

	p, err := repos.Products.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestActivityRepo_FiltraPorBodegaDelEmpleado(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()

	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "u1", Username: "anna"}))
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "u2", Username: "boris"}))
	require.NoError(t, repos.Employees.Create(ctx, &entity.Employee{ID: "e1", UserID: "u1", WarehouseID: "w1"}))
	require.NoError(t, repos.Employees.Create(ctx, &entity.Employee{ID: "e2", UserID: "u2", WarehouseID: "w2"}))
	require.NoError(t, repos.Activity.Create(ctx, &entity.ActivityLog{ID: "l1", Action: "a", UserID: "u1", EmployeeID: "e1"}))
	require.NoError(t, repos.Activity.Create(ctx, &entity.ActivityLog{ID: "l2", Action: "b", UserID: "u2", EmployeeID: "e2"}))

	list, err := repos.Activity.List(ctx, "w1", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "l1", list[0].ID)
	assert.Equal(t, "anna", list[0].Username)

	all, err := repos.Activity.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBlocklist_Vencimiento(t *testing.T) {
	ctx := context.Background()
	bl := memory.NewBlocklist()

	require.NoError(t, bl.Revoke(ctx, "a", time.Now().Add(time.Hour)))
	require.NoError(t, bl.Revoke(ctx, "old", time.Now().Add(-time.Second)))

	revoked, err := bl.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
