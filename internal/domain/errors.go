package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrSameWarehouse     = errors.New("la bodega de origen y destino deben ser distintas")
	ErrDuplicateReceipt  = errors.New("número de recibo duplicado")
	ErrImmutable         = errors.New("la venta no se puede modificar")
)
