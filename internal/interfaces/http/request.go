package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

// RequestLogger access log estructurado: método, ruta, status, latencia y usuario.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}

const dateLayout = "2006-01-02"

// idParam :id de la ruta. Un valor que no es UUID no identifica ningún registro.
func idParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: id %q", domain.ErrNotFound, id)
	}
	return id, nil
}

// uuidQuery filtro opcional por id; vacío si no viene.
func uuidQuery(c *fiber.Ctx, key string) (string, error) {
	v := c.Query(key)
	if v == "" {
		return "", nil
	}
	if _, err := uuid.Parse(v); err != nil {
		return "", fmt.Errorf("%w: %s no es un UUID", domain.ErrInvalidInput, key)
	}
	return v, nil
}

// pageQuery limit/offset del query string con límites.
func pageQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultLimit), Offset: c.QueryInt("offset", 0)}.Clamp()
}

// dateQuery fecha YYYY-MM-DD en la zona horaria de la app. Vacío = nil.
func dateQuery(c *fiber.Ctx, key string, loc *time.Location) (*time.Time, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, key)
	}
	return &t, nil
}

// operationQuery filtros comunes: warehouse_id, start_date, end_date, limit, offset.
func operationQuery(c *fiber.Ctx, loc *time.Location) (dto.OperationQuery, error) {
	from, err := dateQuery(c, "start_date", loc)
	if err != nil {
		return dto.OperationQuery{}, err
	}
	to, err := dateQuery(c, "end_date", loc)
	if err != nil {
		return dto.OperationQuery{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return dto.OperationQuery{}, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	warehouseID, err := uuidQuery(c, "warehouse_id")
	if err != nil {
		return dto.OperationQuery{}, err
	}
	p := pageQuery(c)
	return dto.OperationQuery{
		WarehouseID: warehouseID,
		StartDate:   from,
		EndDate:     to,
		Limit:       p.Limit,
		Offset:      p.Offset,
	}, nil
}
