package inventory_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	appinventory "github.com/jhoicas/warehouse-pos/internal/application/inventory"
	"github.com/jhoicas/warehouse-pos/internal/application/sales"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

func TestAdjustStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	run := func(delta int64, allowNegative bool) (int64, error) {
		var got int64
		err := f.store.Run(ctx, func(r repository.TxRepos) error {
			s, err := appinventory.AdjustStock(ctx, r.Stocks, "w", "p", delta, allowNegative)
			if err != nil {
				return err
			}
			got = s.Quantity
			return nil
		})
		return got, err
	}

	got, err := run(0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got, "delta 0 crea la fila en 0")

	got, err = run(5, false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	_, err = run(-6, false)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), f.stock(t, "w", "p"))

	got, err = run(-6, true)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got)
}

// El stock final de cada par es la suma de los deltas aceptados, sea cual sea la secuencia.
func TestLedger_StockIgualASumaDeDeltas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	checkout := sales.NewCheckoutUseCase(f.store, logger.Nop())

	warehouses := []string{f.warehouse(t, "A"), f.warehouse(t, "B"), f.warehouse(t, "C")}
	products := []string{f.product(t, "milk"), f.product(t, "bread")}
	expected := map[inventory.StockKey]int64{}
	key := func(w, p string) inventory.StockKey { return inventory.StockKey{WarehouseID: w, ProductID: p} }

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		p := products[rng.Intn(len(products))]
		from := warehouses[rng.Intn(len(warehouses))]
		qty := int64(rng.Intn(8) + 1)

		switch rng.Intn(3) {
		case 0:
			_, err := f.incoming.Create(ctx, admin, dto.IncomingRequest{ProductID: p, WarehouseID: from, Quantity: qty})
			require.NoError(t, err)
			expected[key(from, p)] += qty
		case 1:
			to := warehouses[(indexOf(warehouses, from)+1+rng.Intn(len(warehouses)-1))%len(warehouses)]
			_, err := f.movements.Create(ctx, admin, dto.MovementRequest{ProductID: p, FromWarehouseID: from, ToWarehouseID: to, Quantity: qty})
			if expected[key(from, p)]-qty < 0 {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
				continue
			}
			require.NoError(t, err)
			expected[key(from, p)] -= qty
			expected[key(to, p)] += qty
		case 2:
			_, err := checkout.Checkout(ctx, admin, dto.CheckoutRequest{
				WarehouseID:   from,
				PaymentMethod: "cash",
				Items:         []dto.SaleItemRequest{{ProductID: p, Quantity: qty}},
			})
			require.NoError(t, err, "la venta se acepta aunque deje negativo")
			expected[key(from, p)] -= qty
		}
	}

	for _, w := range warehouses {
		for _, p := range products {
			assert.Equal(t, expected[key(w, p)], f.stock(t, w, p), "bodega %s producto %s", w, p)
		}
	}
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
