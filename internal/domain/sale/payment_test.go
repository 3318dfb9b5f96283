package sale

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		in        Payment
		cash      string
		halyk     string
		kaspi     string
		changeDue string
	}{
		{
			name:  "diferido pone todo en cero",
			total: "1000",
			in:    Payment{Method: entity.PaymentDelayed, Cash: d("500"), Halyk: d("500")},
			cash:  "0", halyk: "0", kaspi: "0", changeDue: "0",
		},
		{
			name:  "kaspi recibe el total",
			total: "1000",
			in:    Payment{Method: entity.PaymentKaspi, Cash: d("300")},
			cash:  "0", halyk: "0", kaspi: "1000", changeDue: "0",
		},
		{
			name:  "efectivo con vuelto",
			total: "1000",
			in:    Payment{Method: entity.PaymentCash, CashGiven: d("1500")},
			cash:  "1000", halyk: "0", kaspi: "0", changeDue: "500",
		},
		{
			name:  "mixto sin montos va a efectivo",
			total: "1000",
			in:    Payment{Method: entity.PaymentMixed},
			cash:  "1000", halyk: "0", kaspi: "0", changeDue: "0",
		},
		{
			name:  "mixto efectivo completa el faltante",
			total: "1000",
			in:    Payment{Method: entity.PaymentMixed, Halyk: d("400"), Kaspi: d("100")},
			cash:  "500", halyk: "400", kaspi: "100", changeDue: "0",
		},
		{
			name:  "mixto sobrepago se descuenta de halyk",
			total: "1000",
			in:    Payment{Method: entity.PaymentMixed, Halyk: d("900"), Kaspi: d("300")},
			cash:  "0", halyk: "700", kaspi: "300", changeDue: "0",
		},
		{
			name:  "mixto sobrepago agota halyk y sigue con kaspi",
			total: "1000",
			in:    Payment{Method: entity.PaymentMixed, Halyk: d("100"), Kaspi: d("1200")},
			cash:  "0", halyk: "0", kaspi: "1000", changeDue: "0",
		},
		{
			name:  "mixto vuelto sobre efectivo entregado",
			total: "1000",
			in:    Payment{Method: entity.PaymentMixed, Halyk: d("600"), CashGiven: d("500")},
			cash:  "400", halyk: "600", kaspi: "0", changeDue: "100",
		},
		{
			name:  "halyk no da vuelto",
			total: "1000",
			in:    Payment{Method: entity.PaymentHalyk, CashGiven: d("5000")},
			cash:  "0", halyk: "1000", kaspi: "0", changeDue: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := d(tt.total)
			s, err := Normalize(total, tt.in)
			require.NoError(t, err)
			assert.True(t, d(tt.cash).Equal(s.Cash), "cash=%s", s.Cash)
			assert.True(t, d(tt.halyk).Equal(s.Halyk), "halyk=%s", s.Halyk)
			assert.True(t, d(tt.kaspi).Equal(s.Kaspi), "kaspi=%s", s.Kaspi)
			assert.True(t, d(tt.changeDue).Equal(s.ChangeDue), "change=%s", s.ChangeDue)
			if tt.in.Method != entity.PaymentDelayed {
				assert.True(t, total.Equal(s.Cash.Add(s.Halyk).Add(s.Kaspi)), "el reparto debe cuadrar con el total")
			}
		})
	}
}

func TestNormalize_Invalidos(t *testing.T) {
	_, err := Normalize(d("10"), Payment{Method: "bitcoin"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = Normalize(d("10"), Payment{Method: entity.PaymentMixed, Cash: d("-1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
