package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// OrdersUseCase consultas de ventas: pedidos, recibo PDF y catálogo de caja.
type OrdersUseCase struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	stocks   repository.StockRepository
	pdf      ReceiptPDFGenerator
	loc      *time.Location
}

// NewOrdersUseCase construye el caso de uso. loc es la zona horaria de los recibos.
func NewOrdersUseCase(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	stocks repository.StockRepository,
	pdf ReceiptPDFGenerator,
	loc *time.Location,
) *OrdersUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &OrdersUseCase{sales: sales, products: products, stocks: stocks, pdf: pdf, loc: loc}
}

// List ventas con sus líneas, más recientes primero. El empleado solo ve su bodega.
func (uc *OrdersUseCase) List(ctx context.Context, actor entity.Actor, q dto.OperationQuery) (*dto.OrderListResponse, error) {
	list, err := uc.sales.List(ctx, repository.OperationFilter{
		WarehouseID: actor.ScopeWarehouse(q.WarehouseID),
		From:        q.StartDate,
		To:          q.EndDate,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toSaleResponse(v))
	}
	return &dto.OrderListResponse{Items: items, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}, nil
}

// GetByID obtiene una venta visible para el actor.
func (uc *OrdersUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.SaleResponse, error) {
	v, err := uc.visibleSale(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(v), nil
}

// ReceiptPDF genera el recibo de la venta.
func (uc *OrdersUseCase) ReceiptPDF(ctx context.Context, actor entity.Actor, id string) ([]byte, int64, error) {
	v, err := uc.visibleSale(ctx, actor, id)
	if err != nil {
		return nil, 0, err
	}
	doc, err := uc.pdf.GenerateReceiptPDF(ctx, v, uc.loc)
	if err != nil {
		return nil, 0, fmt.Errorf("recibo %d: %w", v.ReceiptNumber, err)
	}
	return doc, v.ReceiptNumber, nil
}

// Catalog precios y stock (local y total) de todos los productos para la caja.
func (uc *OrdersUseCase) Catalog(ctx context.Context, actor entity.Actor) (*dto.POSCatalogResponse, error) {
	products, err := uc.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	warehouseID := actor.ScopeWarehouse("")
	local := map[string]int64{}
	if warehouseID != "" {
		local, err = uc.stocks.QuantitiesByWarehouse(ctx, warehouseID)
		if err != nil {
			return nil, err
		}
	}
	out := &dto.POSCatalogResponse{WarehouseID: warehouseID, Products: make([]dto.POSProduct, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, dto.POSProduct{
			ID:           p.ID,
			Name:         p.Name,
			Barcode:      p.Barcode,
			CategoryName: p.CategoryName,
			Price:        p.SellingPrice,
			LocalStock:   local[p.ID],
			TotalStock:   p.TotalStock,
		})
	}
	return out, nil
}

func (uc *OrdersUseCase) visibleSale(ctx context.Context, actor entity.Actor, id string) (*entity.SaleView, error) {
	v, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if scope := actor.ScopeWarehouse(""); scope != "" && scope != v.WarehouseID {
		return nil, domain.ErrForbidden
	}
	return v, nil
}
