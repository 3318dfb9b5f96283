package inventory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/warehouse-pos/internal/domain"
)

// StockKey identifica una fila de stock.
type StockKey struct {
	WarehouseID string
	ProductID   string
}

// Delta cambio firmado sobre una fila de stock.
// AllowNegative solo se activa para ventas (sobreventa en caja).
type Delta struct {
	Key           StockKey
	Amount        int64
	AllowNegative bool
}

// ApplyDelta calcula el nuevo saldo: current + delta.
// Una resta que deja el saldo negativo sin permiso devuelve ErrInsufficientStock y el saldo sin cambios.
// Las sumas siempre se aceptan: un ingreso sobre una fila sobrevendida reduce el faltante.
func ApplyDelta(current, delta int64, allowNegative bool) (int64, error) {
	next := current + delta
	if delta < 0 && next < 0 && !allowNegative {
		return current, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, current, -delta)
	}
	return next, nil
}

// LockOrder devuelve las claves distintas de deltas ordenadas por (bodega, producto).
// Toda transacción que toque varias filas las bloquea en este orden.
func LockOrder(deltas []Delta) []StockKey {
	seen := make(map[StockKey]struct{}, len(deltas))
	keys := make([]StockKey, 0, len(deltas))
	for _, d := range deltas {
		if _, ok := seen[d.Key]; ok {
			continue
		}
		seen[d.Key] = struct{}{}
		keys = append(keys, d.Key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].WarehouseID != keys[j].WarehouseID {
			return keys[i].WarehouseID < keys[j].WarehouseID
		}
		return keys[i].ProductID < keys[j].ProductID
	})
	return keys
}
