package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// barcodeAttempts reintentos cuando el código generado choca con uno existente.
const barcodeAttempts = 3

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía operaciones.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create crea un producto. Sin código de barras se genera uno de 13 dígitos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.PurchasePrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		CategoryID:    in.CategoryID,
		Barcode:       strings.TrimSpace(in.Barcode),
		PurchasePrice: in.PurchasePrice.Round(2),
		SellingPrice:  in.SellingPrice.Round(2),
		PhotoURL:      in.PhotoURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if product.Barcode != "" {
		if err := uc.repo.Create(ctx, product); err != nil {
			return nil, err
		}
		return toProductResponse(&entity.ProductSummary{Product: *product}), nil
	}

	var err error
	for i := 0; i < barcodeAttempts; i++ {
		if product.Barcode, err = generateBarcode(); err != nil {
			return nil, err
		}
		err = uc.repo.Create(ctx, product)
		if err == nil {
			return toProductResponse(&entity.ProductSummary{Product: *product}), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		// el duplicado puede venir de (name, category); solo reintentar si el código ya existe
		if existing, _ := uc.repo.GetByBarcode(ctx, product.Barcode); existing == nil {
			return nil, err
		}
	}
	return nil, err
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(&entity.ProductSummary{Product: *p}), nil
}

// Update actualiza un producto. No toca el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.CategoryID != nil {
		if err := uc.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Barcode != nil {
		code := strings.TrimSpace(*in.Barcode)
		if code == "" {
			if code, err = generateBarcode(); err != nil {
				return nil, err
			}
		}
		p.Barcode = code
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.PurchasePrice = in.PurchasePrice.Round(2)
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.SellingPrice = in.SellingPrice.Round(2)
	}
	if in.PhotoURL != nil {
		p.PhotoURL = *in.PhotoURL
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(&entity.ProductSummary{Product: *p}), nil
}

// List lista productos con su stock total.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// Delete elimina un producto. Falla con ErrConflict si ya tiene operaciones.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) ensureCategory(ctx context.Context, id string) error {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toProductResponse(p *entity.ProductSummary) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		Barcode:       p.Barcode,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		PhotoURL:      p.PhotoURL,
		TotalStock:    p.TotalStock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
