package usecase

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateBarcode código numérico aleatorio de entity.BarcodeLength dígitos.
func generateBarcode() (string, error) {
	return randomString("0123456789", entity.BarcodeLength)
}

// generateWarehouseCode código WH-XXXXXX.
func generateWarehouseCode() (string, error) {
	s, err := randomString(codeAlphabet, 6)
	if err != nil {
		return "", err
	}
	return entity.WarehouseCodePrefix + s, nil
}

func randomString(alphabet string, n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String(), nil
}
