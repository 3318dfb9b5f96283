package usecase

import (
	"context"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// StockUseCase consultas de stock por bodega.
type StockUseCase struct {
	repo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// List filas de stock; el empleado con bodega solo ve la suya.
func (uc *StockUseCase) List(ctx context.Context, actor entity.Actor, f repository.StockFilter) (*dto.StockListResponse, error) {
	f.WarehouseID = actor.ScopeWarehouse(f.WarehouseID)
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockResponse{
			WarehouseID:   s.WarehouseID,
			WarehouseName: s.WarehouseName,
			ProductID:     s.ProductID,
			ProductName:   s.ProductName,
			CategoryName:  s.CategoryName,
			Quantity:      s.Quantity,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	return &dto.StockListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}
