package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas de caja y sus líneas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// NextReceiptNumber toma un lock EXCLUSIVE sobre sales (las lecturas siguen permitidas)
// y devuelve MAX + 1. Solo tiene sentido dentro de una transacción.
func (r *SaleRepo) NextReceiptNumber(ctx context.Context) (int64, error) {
	if _, err := r.q.Exec(ctx, `LOCK TABLE sales IN EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("lock sales: %w", err)
	}
	var next int64
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(receipt_number), 0) + 1 FROM sales`).Scan(&next); err != nil {
		return 0, fmt.Errorf("next receipt number: %w", err)
	}
	return next, nil
}

// Create inserta cabecera y líneas en un batch.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO sales (id, receipt_number, warehouse_id, seller_id, payment_method, cash_amount, halyk_amount,
			kaspi_amount, cash_given, change_due, payment_details, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.ReceiptNumber, s.WarehouseID, nullable(s.SellerID), s.PaymentMethod, s.CashAmount, s.HalykAmount,
		s.KaspiAmount, s.CashGiven, s.ChangeDue, s.PaymentDetails, s.Total, s.CreatedAt)
	for i, it := range s.Items {
		b.Queue(`
			INSERT INTO sale_items (id, sale_id, line_no, product_id, quantity, price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, s.ID, i+1, it.ProductID, it.Quantity, it.Price, it.Total)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		if isUniqueViolation(err) && constraintName(err) == "sales_receipt_number_key" {
			return domain.ErrDuplicateReceipt
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o bodega inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

const saleSelect = `
	SELECT s.id, s.receipt_number, s.warehouse_id, s.seller_id, s.payment_method, s.cash_amount, s.halyk_amount,
		s.kaspi_amount, s.cash_given, s.change_due, s.payment_details, s.total, s.created_at,
		wh.name, COALESCE(u.username, '')
	FROM sales s
	JOIN warehouses wh ON wh.id = s.warehouse_id
	LEFT JOIN users u ON u.id = s.seller_id`

func scanSale(row pgx.Row) (*entity.SaleView, error) {
	var (
		v      entity.SaleView
		seller *string
	)
	err := row.Scan(&v.ID, &v.ReceiptNumber, &v.WarehouseID, &seller, &v.PaymentMethod, &v.CashAmount, &v.HalykAmount,
		&v.KaspiAmount, &v.CashGiven, &v.ChangeDue, &v.PaymentDetails, &v.Total, &v.CreatedAt,
		&v.WarehouseName, &v.SellerUsername)
	if err != nil {
		return nil, err
	}
	v.SellerID = deref(seller)
	v.ItemNames = map[string]string{}
	return &v, nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.SaleView, error) {
	v, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.SaleView{v}); err != nil {
		return nil, err
	}
	return v, nil
}

func saleFilter(f repository.OperationFilter) *where {
	w := &where{}
	if f.WarehouseID != "" {
		w.add("s.warehouse_id = ?", f.WarehouseID)
	}
	w.dateRange("s.created_at", f.From, f.To)
	return w
}

// List más recientes primero, con líneas.
func (r *SaleRepo) List(ctx context.Context, f repository.OperationFilter) ([]*entity.SaleView, error) {
	w := saleFilter(f)
	query := saleSelect + w.sql() + ` ORDER BY s.created_at DESC, s.receipt_number DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list := []*entity.SaleView{}
	for rows.Next() {
		v, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de todas las ventas en una sola consulta.
func (r *SaleRepo) loadItems(ctx context.Context, sales []*entity.SaleView) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.SaleView, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.price, si.total, p.name
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ANY($1::uuid[])
		ORDER BY si.sale_id, si.line_no`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			it   entity.SaleItem
			name string
		)
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.Price, &it.Total, &name); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		s := byID[it.SaleID]
		s.Items = append(s.Items, it)
		s.ItemNames[it.ProductID] = name
	}
	return rows.Err()
}

// ReportRows una fila por línea vendida con el precio de compra vigente del producto.
func (r *SaleRepo) ReportRows(ctx context.Context, f repository.OperationFilter) ([]entity.SalesReportRow, error) {
	w := saleFilter(f)
	query := `
		SELECT s.id, s.receipt_number, s.created_at, wh.name, p.name, si.quantity, si.price, si.total,
			p.purchase_price, s.payment_method, s.total
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN warehouses wh ON wh.id = s.warehouse_id
		JOIN products p ON p.id = si.product_id` +
		w.sql() + ` ORDER BY s.created_at DESC, s.receipt_number DESC, si.line_no`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	defer rows.Close()
	var out []entity.SalesReportRow
	for rows.Next() {
		var row entity.SalesReportRow
		if err := rows.Scan(&row.SaleID, &row.ReceiptNumber, &row.Date, &row.WarehouseName, &row.ProductName,
			&row.Quantity, &row.Price, &row.Total, &row.PurchasePrice, &row.PaymentMethod, &row.SaleTotal); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
