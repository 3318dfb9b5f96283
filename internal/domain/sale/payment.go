// Package sale reúne las reglas puras de la caja: reparto del pago y vuelto.
package sale

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

// Payment montos declarados por el cajero. CashGiven es el efectivo entregado por el cliente.
type Payment struct {
	Method    string
	Cash      decimal.Decimal
	Halyk     decimal.Decimal
	Kaspi     decimal.Decimal
	CashGiven decimal.Decimal
}

// Split reparto final que se persiste en la venta.
type Split struct {
	Cash      decimal.Decimal
	Halyk     decimal.Decimal
	Kaspi     decimal.Decimal
	CashGiven decimal.Decimal
	ChangeDue decimal.Decimal
}

// Normalize ajusta el reparto para que cuadre con total.
//
//   - delayed: todo en cero.
//   - cash, halyk, kaspi: el método elegido recibe el total.
//   - mixed: sin montos va todo a efectivo; si no, el efectivo absorbe la diferencia y un sobrepago
//     se descuenta primero de halyk y luego de kaspi, sin bajar de cero.
//
// El vuelto solo aplica a cash y mixed: max(0, entregado + halyk + kaspi - total).
func Normalize(total decimal.Decimal, p Payment) (Split, error) {
	if !entity.ValidPaymentMethod(p.Method) {
		return Split{}, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, p.Method)
	}
	if total.IsNegative() {
		return Split{}, fmt.Errorf("%w: total negativo", domain.ErrInvalidInput)
	}
	for _, v := range []decimal.Decimal{p.Cash, p.Halyk, p.Kaspi, p.CashGiven} {
		if v.IsNegative() {
			return Split{}, fmt.Errorf("%w: montos negativos", domain.ErrInvalidInput)
		}
	}

	zero := decimal.Zero
	s := Split{Cash: zero, Halyk: zero, Kaspi: zero, CashGiven: p.CashGiven, ChangeDue: zero}

	switch p.Method {
	case entity.PaymentDelayed:
	case entity.PaymentCash:
		s.Cash = total
	case entity.PaymentHalyk:
		s.Halyk = total
	case entity.PaymentKaspi:
		s.Kaspi = total
	case entity.PaymentMixed:
		s.Cash, s.Halyk, s.Kaspi = p.Cash, p.Halyk, p.Kaspi
		paid := s.Cash.Add(s.Halyk).Add(s.Kaspi)
		if !paid.IsPositive() {
			s.Cash, s.Halyk, s.Kaspi = total, zero, zero
			break
		}
		s.Cash = s.Cash.Add(total.Sub(paid))
		if s.Cash.IsNegative() {
			overpay := s.Cash.Neg()
			s.Cash = zero
			if s.Halyk.GreaterThanOrEqual(overpay) {
				s.Halyk = s.Halyk.Sub(overpay)
				overpay = zero
			} else {
				overpay = overpay.Sub(s.Halyk)
				s.Halyk = zero
			}
			if overpay.IsPositive() {
				s.Kaspi = decimal.Max(s.Kaspi.Sub(overpay), zero)
			}
		}
		paid = s.Cash.Add(s.Halyk).Add(s.Kaspi)
		if !paid.Equal(total) {
			s.Cash = s.Cash.Add(total.Sub(paid))
		}
		s.Cash = decimal.Max(s.Cash, zero)
	}

	if p.Method == entity.PaymentCash || p.Method == entity.PaymentMixed {
		diff := s.CashGiven.Add(s.Halyk).Add(s.Kaspi).Sub(total)
		if diff.IsPositive() {
			s.ChangeDue = diff
		}
	}
	return s, nil
}
