package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

func TestIncoming_CreateSumaStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	wh := f.warehouse(t, "A")
	p := f.product(t, "milk")

	resp, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: wh, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, wh, resp.WarehouseID)
	assert.False(t, resp.Date.IsZero(), "sin fecha se usa ahora")

	_, err = f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: wh, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(15), f.stock(t, wh, p))

	logs, err := f.store.Repos().Activity.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestIncoming_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	wh := f.warehouse(t, "A")
	p := f.product(t, "milk")

	_, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: wh, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el superusuario debe indicar la bodega")

	_, err = f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: "no-existe", WarehouseID: wh, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIncoming_AlcanceDelEmpleado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	whA := f.warehouse(t, "A")
	whB := f.warehouse(t, "B")
	p := f.product(t, "milk")

	storekeeper := entity.Actor{UserID: "u-1", EmployeeID: "e-1", WarehouseID: whA}
	resp, err := f.incoming.Create(ctx, storekeeper, dto.IncomingRequest{ProductID: p, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, whA, resp.WarehouseID, "sin bodega explícita usa la del empleado")

	_, err = f.incoming.Create(ctx, storekeeper, dto.IncomingRequest{ProductID: p, WarehouseID: whB, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	homeless := entity.Actor{UserID: "u-2", EmployeeID: "e-2"}
	_, err = f.incoming.Create(ctx, homeless, dto.IncomingRequest{ProductID: p, WarehouseID: whA, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, int64(3), f.stock(t, whA, p))
	assert.Equal(t, int64(0), f.stock(t, whB, p))
}

func TestIncoming_UpdateAplicaNuevoMenosViejo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	whA := f.warehouse(t, "A")
	whB := f.warehouse(t, "B")
	p := f.product(t, "milk")

	created, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: whA, Quantity: 10})
	require.NoError(t, err)

	_, err = f.incoming.Update(ctx, admin, created.ID, dto.IncomingRequest{ProductID: p, WarehouseID: whA, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.stock(t, whA, p))

	// cambio de bodega: sale todo de A y entra en B
	_, err = f.incoming.Update(ctx, admin, created.ID, dto.IncomingRequest{ProductID: p, WarehouseID: whB, Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.stock(t, whA, p))
	assert.Equal(t, int64(6), f.stock(t, whB, p))
}

func TestIncoming_UpdateRechazadoSiLaReversionDejaNegativo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	whA := f.warehouse(t, "A")
	whB := f.warehouse(t, "B")
	p := f.product(t, "milk")

	created, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: whA, Quantity: 10})
	require.NoError(t, err)
	_, err = f.movements.Create(ctx, admin, dto.MovementRequest{ProductID: p, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: 8})
	require.NoError(t, err)

	// revertir 10 sobre 2 dejaría -8 aunque después se sume 1
	_, err = f.incoming.Update(ctx, admin, created.ID, dto.IncomingRequest{ProductID: p, WarehouseID: whA, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.stock(t, whA, p))

	rec, err := f.store.Repos().Incoming.GetForUpdate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), rec.Quantity, "el registro queda como estaba")

	// la reversión se valida antes de reaplicar, incluso si la cantidad nueva es mayor
	_, err = f.incoming.Update(ctx, admin, created.ID, dto.IncomingRequest{ProductID: p, WarehouseID: whA, Quantity: 12})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.stock(t, whA, p))
}

func TestIncoming_DeleteRevierte(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	wh := f.warehouse(t, "A")
	p := f.product(t, "milk")

	first, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: wh, Quantity: 7})
	require.NoError(t, err)
	_, err = f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: wh, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, f.incoming.Delete(ctx, admin, first.ID))
	assert.Equal(t, int64(2), f.stock(t, wh, p))

	assert.ErrorIs(t, f.incoming.Delete(ctx, admin, first.ID), domain.ErrNotFound)
}

func TestIncoming_BatchTodoONada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	wh := f.warehouse(t, "A")
	p1 := f.product(t, "milk")
	p2 := f.product(t, "bread")

	out, err := f.incoming.CreateBatch(ctx, admin, dto.IncomingBatchRequest{
		WarehouseID: wh,
		Items:       []dto.IncomingBatchItem{{ProductID: p1, Quantity: 3}, {ProductID: p2, Quantity: 4}, {ProductID: p1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, int64(4), f.stock(t, wh, p1))
	assert.Equal(t, int64(4), f.stock(t, wh, p2))

	_, err = f.incoming.CreateBatch(ctx, admin, dto.IncomingBatchRequest{
		WarehouseID: wh,
		Items:       []dto.IncomingBatchItem{{ProductID: p1, Quantity: 5}, {ProductID: "no-existe", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(4), f.stock(t, wh, p1), "un error en una línea revierte todo el lote")

	list, err := f.incoming.List(ctx, admin, dto.OperationQuery{WarehouseID: wh})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
}
