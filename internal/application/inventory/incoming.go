package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

const entityIncoming = "incoming"

// IncomingUseCase ingresos de mercancía: cada alta suma stock y cada edición revierte y reaplica.
type IncomingUseCase struct {
	tx   TxRunner
	repo repository.IncomingRepository
	log  *logger.Logger
}

// NewIncomingUseCase construye el caso de uso. repo se usa solo para listados fuera de transacción.
func NewIncomingUseCase(tx TxRunner, repo repository.IncomingRepository, log *logger.Logger) *IncomingUseCase {
	return &IncomingUseCase{tx: tx, repo: repo, log: log.Component("incoming")}
}

// Create registra un ingreso y suma la cantidad al stock de la bodega.
func (uc *IncomingUseCase) Create(ctx context.Context, actor entity.Actor, in dto.IncomingRequest) (*dto.IncomingResponse, error) {
	if in.Quantity <= 0 || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouseID, err := actor.OperatingWarehouse(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	rec := &entity.Incoming{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		WarehouseID: warehouseID,
		Quantity:    in.Quantity,
		Date:        dateOrNow(in.Date),
		CreatedBy:   actor.UserID,
	}
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := ensureRefs(ctx, r, rec.ProductID, rec.WarehouseID); err != nil {
			return err
		}
		if err := r.Incoming.Create(ctx, rec); err != nil {
			return err
		}
		if _, err := ApplyDeltas(ctx, r.Stocks, incomingDelta(rec, 1)); err != nil {
			return err
		}
		return r.Activity.Create(ctx, NewActivity(actor, "Поступление создано", entityIncoming, rec.ID,
			fmt.Sprintf("product=%s warehouse=%s qty=%d", rec.ProductID, rec.WarehouseID, rec.Quantity)))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("incoming_id", rec.ID).Str("warehouse_id", rec.WarehouseID).
		Str("product_id", rec.ProductID).Int64("delta", rec.Quantity).Msg("ingreso registrado")
	return toIncomingResponse(rec), nil
}

// CreateBatch registra varios productos a una misma bodega; todo o nada.
func (uc *IncomingUseCase) CreateBatch(ctx context.Context, actor entity.Actor, in dto.IncomingBatchRequest) ([]dto.IncomingResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	warehouseID, err := actor.OperatingWarehouse(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	date := dateOrNow(in.Date)
	recs := make([]*entity.Incoming, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 || item.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		recs = append(recs, &entity.Incoming{
			ID:          uuid.New().String(),
			ProductID:   item.ProductID,
			WarehouseID: warehouseID,
			Quantity:    item.Quantity,
			Date:        date,
			CreatedBy:   actor.UserID,
		})
	}
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		deltas := make([]inventory.Delta, 0, len(recs))
		for _, rec := range recs {
			if err := ensureRefs(ctx, r, rec.ProductID, rec.WarehouseID); err != nil {
				return err
			}
			if err := r.Incoming.Create(ctx, rec); err != nil {
				return err
			}
			deltas = append(deltas, incomingDelta(rec, 1))
		}
		if _, err := ApplyDeltas(ctx, r.Stocks, deltas...); err != nil {
			return err
		}
		return r.Activity.Create(ctx, NewActivity(actor, "Поступление (пакет) создано", entityIncoming, recs[0].ID,
			fmt.Sprintf("warehouse=%s items=%d", warehouseID, len(recs))))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("warehouse_id", warehouseID).Int("items", len(recs)).Msg("ingreso por lote registrado")
	out := make([]dto.IncomingResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, *toIncomingResponse(rec))
	}
	return out, nil
}

// Update revierte el ingreso anterior (sin permitir negativo) y aplica el nuevo, en una transacción.
func (uc *IncomingUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.IncomingRequest) (*dto.IncomingResponse, error) {
	if in.Quantity <= 0 || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Incoming
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		old, err := r.Incoming.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if _, err := actor.OperatingWarehouse(old.WarehouseID); err != nil {
			return err
		}
		requested := in.WarehouseID
		if requested == "" {
			requested = old.WarehouseID
		}
		warehouseID, err := actor.OperatingWarehouse(requested)
		if err != nil {
			return err
		}
		if err := ensureRefs(ctx, r, in.ProductID, warehouseID); err != nil {
			return err
		}
		next := *old
		next.ProductID = in.ProductID
		next.WarehouseID = warehouseID
		next.Quantity = in.Quantity
		if in.Date != nil {
			next.Date = *in.Date
		}
		if _, err := ApplyDeltas(ctx, r.Stocks, incomingDelta(old, -1), incomingDelta(&next, 1)); err != nil {
			return err
		}
		if err := r.Incoming.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return r.Activity.Create(ctx, NewActivity(actor, "Поступление изменено", entityIncoming, id,
			fmt.Sprintf("qty %d -> %d", old.Quantity, next.Quantity)))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("incoming_id", id).Int64("quantity", updated.Quantity).Msg("ingreso actualizado")
	return toIncomingResponse(updated), nil
}

// Delete revierte el ingreso (sin permitir negativo) y lo elimina.
func (uc *IncomingUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		old, err := r.Incoming.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if _, err := actor.OperatingWarehouse(old.WarehouseID); err != nil {
			return err
		}
		if _, err := ApplyDeltas(ctx, r.Stocks, incomingDelta(old, -1)); err != nil {
			return err
		}
		if err := r.Incoming.Delete(ctx, id); err != nil {
			return err
		}
		return r.Activity.Create(ctx, NewActivity(actor, "Поступление удалено", entityIncoming, id,
			fmt.Sprintf("product=%s warehouse=%s qty=%d", old.ProductID, old.WarehouseID, old.Quantity)))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("incoming_id", id).Msg("ingreso eliminado")
	return nil
}

// List lista ingresos; el empleado solo ve los de su bodega.
func (uc *IncomingUseCase) List(ctx context.Context, actor entity.Actor, q dto.OperationQuery) (*dto.IncomingListResponse, error) {
	list, err := uc.repo.List(ctx, operationFilter(actor, q.WarehouseID, q.StartDate, q.EndDate, q.Limit, q.Offset))
	if err != nil {
		return nil, err
	}
	items := make([]dto.IncomingResponse, 0, len(list))
	for _, v := range list {
		resp := toIncomingResponse(&v.Incoming)
		resp.ProductName = v.ProductName
		resp.WarehouseName = v.WarehouseName
		items = append(items, *resp)
	}
	return &dto.IncomingListResponse{Items: items, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}, nil
}

func incomingDelta(rec *entity.Incoming, sign int64) inventory.Delta {
	return inventory.Delta{
		Key:    inventory.StockKey{WarehouseID: rec.WarehouseID, ProductID: rec.ProductID},
		Amount: sign * rec.Quantity,
	}
}

// ensureRefs verifica que producto y bodega existan.
func ensureRefs(ctx context.Context, r repository.TxRepos, productID string, warehouseIDs ...string) error {
	p, err := r.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	for _, id := range warehouseIDs {
		w, err := r.Warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
		}
	}
	return nil
}

func dateOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now()
	}
	return *t
}

func toIncomingResponse(rec *entity.Incoming) *dto.IncomingResponse {
	return &dto.IncomingResponse{
		ID:          rec.ID,
		ProductID:   rec.ProductID,
		WarehouseID: rec.WarehouseID,
		Quantity:    rec.Quantity,
		Date:        rec.Date,
		CreatedBy:   rec.CreatedBy,
	}
}
