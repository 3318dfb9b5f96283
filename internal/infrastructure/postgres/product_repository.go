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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.name, p.category_id, p.barcode, p.purchase_price, p.selling_price, p.photo_url, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row, extra ...any) (*entity.Product, error) {
	var p entity.Product
	dest := append([]any{
		&p.ID, &p.Name, &p.CategoryID, &p.Barcode, &p.PurchasePrice, &p.SellingPrice, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. ErrDuplicate si choca el barcode o (nombre, categoría).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, name, category_id, barcode, purchase_price, selling_price, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.CategoryID, p.Barcode, p.PurchasePrice, p.SellingPrice, p.PhotoURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, p.CategoryID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por código de barras (escáner de caja).
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.barcode = $1`, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. El stock no vive aquí.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, category_id = $3, barcode = $4, purchase_price = $5, selling_price = $6,
			photo_url = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Name, p.CategoryID, p.Barcode, p.PurchasePrice, p.SellingPrice, p.PhotoURL, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, p.CategoryID)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto. Las filas de stock caen en cascada; las operaciones lo impiden.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el producto tiene operaciones registradas", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List productos con categoría y stock total en todas las bodegas.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.ProductSummary, error) {
	w := &where{}
	if f.CategoryID != "" {
		w.add("p.category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		w.add("(p.name ILIKE ? OR p.barcode LIKE ?)", "%"+f.Search+"%", "%"+f.Search+"%")
	}
	query := `
		SELECT ` + productColumns + `, COALESCE(c.name, ''), COALESCE(s.total, 0)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN (SELECT product_id, SUM(quantity)::bigint AS total FROM stocks GROUP BY product_id) s ON s.product_id = p.id` +
		w.sql() + ` ORDER BY p.name` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.ProductSummary{}
	for rows.Next() {
		var sum entity.ProductSummary
		p, err := scanProduct(rows, &sum.CategoryName, &sum.TotalStock)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		sum.Product = *p
		list = append(list, &sum)
	}
	return list, rows.Err()
}
