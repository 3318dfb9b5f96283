// Package sales casos de uso de caja: venta con numeración de recibo, pedidos y reportes.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	appinventory "github.com/jhoicas/warehouse-pos/internal/application/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
	"github.com/jhoicas/warehouse-pos/internal/domain/sale"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

const entitySale = "sale"

// CheckoutUseCase registra ventas de caja. Cada venta toma el siguiente número de recibo
// y resta stock de su bodega aunque quede negativo.
type CheckoutUseCase struct {
	tx  appinventory.TxRunner
	log *logger.Logger
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(tx appinventory.TxRunner, log *logger.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{tx: tx, log: log.Component("checkout")}
}

// Checkout valida las líneas, normaliza el pago y persiste venta, stock y log en una transacción.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, actor entity.Actor, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta necesita al menos una línea", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser mayor a 0", domain.ErrInvalidInput)
		}
		if it.ProductID == "" && strings.TrimSpace(it.Barcode) == "" {
			return nil, fmt.Errorf("%w: product_id o barcode es requerido", domain.ErrInvalidInput)
		}
		if it.Price != nil && it.Price.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
		}
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	warehouseID, err := actor.OperatingWarehouse(in.WarehouseID)
	if err != nil {
		return nil, err
	}

	s := &entity.Sale{
		ID:             uuid.New().String(),
		WarehouseID:    warehouseID,
		SellerID:       actor.UserID,
		PaymentMethod:  in.PaymentMethod,
		PaymentDetails: in.PaymentDetails,
		CreatedAt:      time.Now(),
	}
	names := make(map[string]string, len(in.Items))
	var warehouseName string

	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		wh, err := r.Warehouses.GetByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
		}
		warehouseName = wh.Name

		total := decimal.Zero
		items := make([]entity.SaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			p, err := resolveProduct(ctx, r.Products, it)
			if err != nil {
				return err
			}
			price := p.SellingPrice
			if it.Price != nil {
				price = *it.Price
			}
			lineTotal := price.Mul(decimal.NewFromInt(it.Quantity))
			total = total.Add(lineTotal)
			names[p.ID] = p.Name
			items = append(items, entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    s.ID,
				ProductID: p.ID,
				Quantity:  it.Quantity,
				Price:     price,
				Total:     lineTotal,
			})
		}

		split, err := sale.Normalize(total, sale.Payment{
			Method:    in.PaymentMethod,
			Cash:      in.CashAmount,
			Halyk:     in.HalykAmount,
			Kaspi:     in.KaspiAmount,
			CashGiven: in.CashGiven,
		})
		if err != nil {
			return err
		}
		s.Total = total
		s.Items = items
		s.CashAmount, s.HalykAmount, s.KaspiAmount = split.Cash, split.Halyk, split.Kaspi
		s.CashGiven, s.ChangeDue = split.CashGiven, split.ChangeDue

		number, err := r.Sales.NextReceiptNumber(ctx)
		if err != nil {
			return err
		}
		s.ReceiptNumber = number

		deltas := make([]inventory.Delta, 0, len(items))
		for _, item := range items {
			deltas = append(deltas, inventory.Delta{
				Key:           inventory.StockKey{WarehouseID: warehouseID, ProductID: item.ProductID},
				Amount:        -item.Quantity,
				AllowNegative: true,
			})
		}
		if _, err := appinventory.ApplyDeltas(ctx, r.Stocks, deltas...); err != nil {
			return err
		}
		if err := r.Sales.Create(ctx, s); err != nil {
			return err
		}
		return r.Activity.Create(ctx, appinventory.NewActivity(actor, "Продажа (касса)", entitySale, s.ID,
			fmt.Sprintf("Чек №%d, склад: %s, сумма: %s", s.ReceiptNumber, wh.Name, s.Total.StringFixed(2))))
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateReceipt) {
			uc.log.Warn().Err(err).Msg("número de recibo duplicado")
		}
		return nil, err
	}
	uc.log.Info().Str("sale_id", s.ID).Int64("receipt_number", s.ReceiptNumber).
		Str("warehouse_id", s.WarehouseID).Str("total", s.Total.String()).Msg("venta registrada")
	return toSaleResponse(&entity.SaleView{Sale: *s, WarehouseName: warehouseName, ItemNames: names}), nil
}

// Update las ventas no se editan una vez creadas.
func (uc *CheckoutUseCase) Update(_ context.Context, _ entity.Actor, _ string) error {
	return domain.ErrImmutable
}

func resolveProduct(ctx context.Context, products repository.ProductRepository, it dto.SaleItemRequest) (*entity.Product, error) {
	var (
		p   *entity.Product
		err error
	)
	if it.ProductID != "" {
		p, err = products.GetByID(ctx, it.ProductID)
	} else {
		p, err = products.GetByBarcode(ctx, strings.TrimSpace(it.Barcode))
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		ref := it.ProductID
		if ref == "" {
			ref = it.Barcode
		}
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, ref)
	}
	return p, nil
}

func toSaleResponse(v *entity.SaleView) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: v.ItemNames[it.ProductID],
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		})
	}
	return &dto.SaleResponse{
		ID:             v.ID,
		ReceiptNumber:  v.ReceiptNumber,
		WarehouseID:    v.WarehouseID,
		WarehouseName:  v.WarehouseName,
		SellerID:       v.SellerID,
		SellerUsername: v.SellerUsername,
		PaymentMethod:  v.PaymentMethod,
		CashAmount:     v.CashAmount,
		HalykAmount:    v.HalykAmount,
		KaspiAmount:    v.KaspiAmount,
		CashGiven:      v.CashGiven,
		ChangeDue:      v.ChangeDue,
		PaymentDetails: v.PaymentDetails,
		Total:          v.Total,
		CreatedAt:      v.CreatedAt,
		Items:          items,
	}
}
