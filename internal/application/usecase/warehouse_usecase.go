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

// WarehouseUseCase casos de uso para bodegas. El perfil se crea y actualiza junto con la bodega.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea la bodega con código WH-XXXXXX y su perfil.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      name,
		Location:  in.Location,
		CreatedAt: time.Now(),
	}
	profile := &entity.WarehouseProfile{
		WarehouseID:           w.ID,
		ManagerName:           in.ManagerName,
		ContactPhone:          in.ContactPhone,
		Capacity:              in.Capacity,
		TemperatureControlled: in.TemperatureControlled,
	}
	var err error
	for i := 0; i < barcodeAttempts; i++ {
		if w.Code, err = generateWarehouseCode(); err != nil {
			return nil, err
		}
		err = uc.repo.Create(ctx, w, profile)
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(&entity.WarehouseSummary{Warehouse: *w, Profile: *profile}), nil
}

// GetByID obtiene una bodega con su perfil.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	profile, err := uc.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	sum := &entity.WarehouseSummary{Warehouse: *w}
	if profile != nil {
		sum.Profile = *profile
	}
	return toWarehouseResponse(sum), nil
}

// Update aplica cambios parciales a bodega y perfil.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	profile, err := uc.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.WarehouseProfile{WarehouseID: id}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		w.Name = name
	}
	if in.Location != nil {
		w.Location = *in.Location
	}
	if in.ManagerName != nil {
		profile.ManagerName = *in.ManagerName
	}
	if in.ContactPhone != nil {
		profile.ContactPhone = *in.ContactPhone
	}
	if in.Capacity != nil {
		if *in.Capacity < 0 {
			return nil, domain.ErrInvalidInput
		}
		profile.Capacity = *in.Capacity
	}
	if in.TemperatureControlled != nil {
		profile.TemperatureControlled = *in.TemperatureControlled
	}
	if err := uc.repo.Update(ctx, w, profile); err != nil {
		return nil, err
	}
	return toWarehouseResponse(&entity.WarehouseSummary{Warehouse: *w, Profile: *profile}), nil
}

// List lista bodegas con su stock total.
func (uc *WarehouseUseCase) List(ctx context.Context, limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toWarehouseResponse(w *entity.WarehouseSummary) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:                    w.ID,
		Name:                  w.Name,
		Location:              w.Location,
		Code:                  w.Code,
		ManagerName:           w.Profile.ManagerName,
		ContactPhone:          w.Profile.ContactPhone,
		Capacity:              w.Profile.Capacity,
		TemperatureControlled: w.Profile.TemperatureControlled,
		TotalStock:            w.TotalStock,
		CreatedAt:             w.CreatedAt,
	}
}
