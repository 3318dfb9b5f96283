package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

const entityMovement = "movement"

// MovementUseCase traslados entre bodegas. Resta en origen (sin negativo) y suma en destino.
type MovementUseCase struct {
	tx   TxRunner
	repo repository.MovementRepository
	log  *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(tx TxRunner, repo repository.MovementRepository, log *logger.Logger) *MovementUseCase {
	return &MovementUseCase{tx: tx, repo: repo, log: log.Component("movement")}
}

// Create registra un traslado. El empleado solo puede sacar de su bodega.
func (uc *MovementUseCase) Create(ctx context.Context, actor entity.Actor, in dto.MovementRequest) (*dto.MovementResponse, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	from, err := actor.OperatingWarehouse(in.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	if from == in.ToWarehouseID {
		return nil, domain.ErrSameWarehouse
	}
	rec := &entity.Movement{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		FromWarehouseID: from,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Date:            dateOrNow(in.Date),
		CreatedBy:       actor.UserID,
	}
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := ensureRefs(ctx, r, rec.ProductID, rec.FromWarehouseID, rec.ToWarehouseID); err != nil {
			return err
		}
		if err := r.Movements.Create(ctx, rec); err != nil {
			return err
		}
		if _, err := ApplyDeltas(ctx, r.Stocks, movementDeltas(rec, 1)...); err != nil {
			return err
		}
		return r.Activity.Create(ctx, NewActivity(actor, "Перемещение создано", entityMovement, rec.ID,
			fmt.Sprintf("product=%s %s -> %s qty=%d", rec.ProductID, rec.FromWarehouseID, rec.ToWarehouseID, rec.Quantity)))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("movement_id", rec.ID).Str("product_id", rec.ProductID).
		Str("from_warehouse_id", rec.FromWarehouseID).Str("to_warehouse_id", rec.ToWarehouseID).
		Int64("delta", rec.Quantity).Msg("traslado registrado")
	return toMovementResponse(rec), nil
}

// Update revierte el traslado anterior (+old en origen, -old en destino sin negativo) y aplica el nuevo.
func (uc *MovementUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.MovementRequest) (*dto.MovementResponse, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	var updated *entity.Movement
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		old, err := r.Movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if _, err := actor.OperatingWarehouse(old.FromWarehouseID); err != nil {
			return err
		}
		requested := in.FromWarehouseID
		if requested == "" {
			requested = old.FromWarehouseID
		}
		from, err := actor.OperatingWarehouse(requested)
		if err != nil {
			return err
		}
		if from == in.ToWarehouseID {
			return domain.ErrSameWarehouse
		}
		if err := ensureRefs(ctx, r, in.ProductID, from, in.ToWarehouseID); err != nil {
			return err
		}
		next := *old
		next.ProductID = in.ProductID
		next.FromWarehouseID = from
		next.ToWarehouseID = in.ToWarehouseID
		next.Quantity = in.Quantity
		if in.Date != nil {
			next.Date = *in.Date
		}
		deltas := append(movementDeltas(old, -1), movementDeltas(&next, 1)...)
		if _, err := ApplyDeltas(ctx, r.Stocks, deltas...); err != nil {
			return err
		}
		if err := r.Movements.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return r.Activity.Create(ctx, NewActivity(actor, "Перемещение изменено", entityMovement, id,
			fmt.Sprintf("qty %d -> %d", old.Quantity, next.Quantity)))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("movement_id", id).Int64("quantity", updated.Quantity).Msg("traslado actualizado")
	return toMovementResponse(updated), nil
}

// Delete revierte el traslado y lo elimina.
func (uc *MovementUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		old, err := r.Movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if _, err := actor.OperatingWarehouse(old.FromWarehouseID); err != nil {
			return err
		}
		if _, err := ApplyDeltas(ctx, r.Stocks, movementDeltas(old, -1)...); err != nil {
			return err
		}
		if err := r.Movements.Delete(ctx, id); err != nil {
			return err
		}
		return r.Activity.Create(ctx, NewActivity(actor, "Перемещение удалено", entityMovement, id,
			fmt.Sprintf("product=%s %s -> %s qty=%d", old.ProductID, old.FromWarehouseID, old.ToWarehouseID, old.Quantity)))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("movement_id", id).Msg("traslado eliminado")
	return nil
}

// List lista traslados; el empleado ve los que salen o llegan a su bodega.
func (uc *MovementUseCase) List(ctx context.Context, actor entity.Actor, q dto.OperationQuery) (*dto.MovementListResponse, error) {
	list, err := uc.repo.List(ctx, operationFilter(actor, q.WarehouseID, q.StartDate, q.EndDate, q.Limit, q.Offset))
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, v := range list {
		resp := toMovementResponse(&v.Movement)
		resp.ProductName = v.ProductName
		resp.FromWarehouseName = v.FromWarehouseName
		resp.ToWarehouseName = v.ToWarehouseName
		items = append(items, *resp)
	}
	return &dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}, nil
}

func validateMovement(in dto.MovementRequest) error {
	if in.Quantity <= 0 || in.ProductID == "" || in.ToWarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if in.FromWarehouseID != "" && in.FromWarehouseID == in.ToWarehouseID {
		return domain.ErrSameWarehouse
	}
	return nil
}

// movementDeltas sign=1 aplica el traslado, sign=-1 lo revierte.
// La resta de cada par nunca puede dejar negativo.
func movementDeltas(m *entity.Movement, sign int64) []inventory.Delta {
	from := inventory.Delta{
		Key:    inventory.StockKey{WarehouseID: m.FromWarehouseID, ProductID: m.ProductID},
		Amount: -sign * m.Quantity,
	}
	to := inventory.Delta{
		Key:    inventory.StockKey{WarehouseID: m.ToWarehouseID, ProductID: m.ProductID},
		Amount: sign * m.Quantity,
	}
	return []inventory.Delta{from, to}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		Quantity:        m.Quantity,
		Date:            m.Date,
		CreatedBy:       m.CreatedBy,
	}
}
