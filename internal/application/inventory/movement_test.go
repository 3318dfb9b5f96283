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

func TestMovement_MismaBodegaSiempreFalla(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	wh := f.warehouse(t, "A")
	p := f.product(t, "milk")
	_, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: wh, Quantity: 5})
	require.NoError(t, err)

	_, err = f.movements.Create(ctx, admin, dto.MovementRequest{ProductID: p, FromWarehouseID: wh, ToWarehouseID: wh, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrSameWarehouse)

	// el empleado no envía origen: se toma su bodega y sigue siendo la misma
	clerk := entity.Actor{UserID: "u", EmployeeID: "e", WarehouseID: wh}
	_, err = f.movements.Create(ctx, clerk, dto.MovementRequest{ProductID: p, ToWarehouseID: wh, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrSameWarehouse)

	assert.Equal(t, int64(5), f.stock(t, wh, p))
}

func TestMovement_SinStockSuficienteNoCambiaNada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	whA := f.warehouse(t, "A")
	whB := f.warehouse(t, "B")
	p := f.product(t, "milk")
	_, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: whA, Quantity: 3})
	require.NoError(t, err)

	_, err = f.movements.Create(ctx, admin, dto.MovementRequest{ProductID: p, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: 4})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), f.stock(t, whA, p))
	assert.Equal(t, int64(0), f.stock(t, whB, p))

	list, err := f.movements.List(ctx, admin, dto.OperationQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestMovement_CreateUpdateDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	whA := f.warehouse(t, "A")
	whB := f.warehouse(t, "B")
	whC := f.warehouse(t, "C")
	p := f.product(t, "milk")
	_, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: whA, Quantity: 10})
	require.NoError(t, err)

	m, err := f.movements.Create(ctx, admin, dto.MovementRequest{ProductID: p, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.stock(t, whA, p))
	assert.Equal(t, int64(6), f.stock(t, whB, p))

	// mismo origen, nuevo destino y cantidad: neto = nuevo - viejo
	_, err = f.movements.Update(ctx, admin, m.ID, dto.MovementRequest{ProductID: p, FromWarehouseID: whA, ToWarehouseID: whC, Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.stock(t, whA, p))
	assert.Equal(t, int64(0), f.stock(t, whB, p))
	assert.Equal(t, int64(9), f.stock(t, whC, p))

	require.NoError(t, f.movements.Delete(ctx, admin, m.ID))
	assert.Equal(t, int64(10), f.stock(t, whA, p))
	assert.Equal(t, int64(0), f.stock(t, whC, p))
}

func TestMovement_UpdateRechazadoSiElDestinoYaNoTiene(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	whA := f.warehouse(t, "A")
	whB := f.warehouse(t, "B")
	whC := f.warehouse(t, "C")
	p := f.product(t, "milk")
	_, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: whA, Quantity: 5})
	require.NoError(t, err)
	m, err := f.movements.Create(ctx, admin, dto.MovementRequest{ProductID: p, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: 5})
	require.NoError(t, err)
	_, err = f.movements.Create(ctx, admin, dto.MovementRequest{ProductID: p, FromWarehouseID: whB, ToWarehouseID: whC, Quantity: 4})
	require.NoError(t, err)

	_, err = f.movements.Update(ctx, admin, m.ID, dto.MovementRequest{ProductID: p, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: 2})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(0), f.stock(t, whA, p))
	assert.Equal(t, int64(1), f.stock(t, whB, p))
	assert.Equal(t, int64(4), f.stock(t, whC, p))
}

func TestMovement_ListFiltraPorBodegaDelEmpleado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	whA := f.warehouse(t, "A")
	whB := f.warehouse(t, "B")
	whC := f.warehouse(t, "C")
	p := f.product(t, "milk")
	for _, wh := range []string{whA, whC} {
		_, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: wh, Quantity: 5})
		require.NoError(t, err)
	}
	_, err := f.movements.Create(ctx, admin, dto.MovementRequest{ProductID: p, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: 1})
	require.NoError(t, err)
	_, err = f.movements.Create(ctx, admin, dto.MovementRequest{ProductID: p, FromWarehouseID: whC, ToWarehouseID: whA, Quantity: 1})
	require.NoError(t, err)

	clerkB := entity.Actor{UserID: "u", EmployeeID: "e", WarehouseID: whB}
	list, err := f.movements.List(ctx, clerkB, dto.OperationQuery{WarehouseID: whC})
	require.NoError(t, err)
	require.Len(t, list.Items, 1, "el filtro pedido se ignora: solo su bodega")
	assert.Equal(t, whB, list.Items[0].ToWarehouseID)
	assert.Equal(t, "milk", list.Items[0].ProductName)
}
