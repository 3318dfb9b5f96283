package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/warehouse-pos/internal/application/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

var admin = entity.Actor{UserID: "00000000-0000-0000-0000-0000000000aa", IsSuperuser: true}

type fixture struct {
	store     *memory.Store
	incoming  *appinventory.IncomingUseCase
	movements *appinventory.MovementUseCase
}

func newFixture() *fixture {
	s := memory.New()
	repos := s.Repos()
	return &fixture{
		store:     s,
		incoming:  appinventory.NewIncomingUseCase(s, repos.Incoming, logger.Nop()),
		movements: appinventory.NewMovementUseCase(s, repos.Movements, logger.Nop()),
	}
}

func (f *fixture) warehouse(t *testing.T, name string) string {
	t.Helper()
	w := &entity.Warehouse{ID: uuid.New().String(), Name: name, Code: "WH-" + name}
	require.NoError(t, f.store.Repos().Warehouses.Create(context.Background(), w, &entity.WarehouseProfile{}))
	return w.ID
}

func (f *fixture) product(t *testing.T, name string) string {
	t.Helper()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Barcode:       "B-" + name,
		PurchasePrice: decimal.NewFromInt(50),
		SellingPrice:  decimal.NewFromInt(100),
	}
	require.NoError(t, f.store.Repos().Products.Create(context.Background(), p))
	return p.ID
}

func (f *fixture) stock(t *testing.T, warehouseID, productID string) int64 {
	t.Helper()
	s, err := f.store.Repos().Stocks.Get(context.Background(), inventory.StockKey{WarehouseID: warehouseID, ProductID: productID})
	require.NoError(t, err)
	return s.Quantity
}
