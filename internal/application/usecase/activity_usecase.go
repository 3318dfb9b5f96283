package usecase

import (
	"context"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// ActivityUseCase lectura del registro de acciones.
type ActivityUseCase struct {
	repo repository.ActivityLogRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityLogRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// List acciones más recientes primero; el empleado con bodega ve las de empleados de su bodega.
func (uc *ActivityUseCase) List(ctx context.Context, actor entity.Actor, limit, offset int) (*dto.ActivityLogListResponse, error) {
	list, err := uc.repo.List(ctx, actor.ScopeWarehouse(""), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.ActivityLogResponse{
			ID:         l.ID,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Details:    l.Details,
			UserID:     l.UserID,
			Username:   l.Username,
			CreatedAt:  l.CreatedAt,
		})
	}
	return &dto.ActivityLogListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}
