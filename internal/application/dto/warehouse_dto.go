package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega (el perfil se crea con ella).
type CreateWarehouseRequest struct {
	Name                  string `json:"name" validate:"required,min=1,max=150"`
	Location              string `json:"location" validate:"max=255"`
	ManagerName           string `json:"manager_name" validate:"max=255"`
	ContactPhone          string `json:"contact_phone" validate:"max=50"`
	Capacity              int    `json:"capacity" validate:"min=0"`
	TemperatureControlled bool   `json:"temperature_controlled"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name                  *string `json:"name" validate:"omitempty,min=1,max=150"`
	Location              *string `json:"location" validate:"omitempty,max=255"`
	ManagerName           *string `json:"manager_name" validate:"omitempty,max=255"`
	ContactPhone          *string `json:"contact_phone" validate:"omitempty,max=50"`
	Capacity              *int    `json:"capacity" validate:"omitempty,min=0"`
	TemperatureControlled *bool   `json:"temperature_controlled"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Location              string    `json:"location"`
	Code                  string    `json:"code"`
	ManagerName           string    `json:"manager_name"`
	ContactPhone          string    `json:"contact_phone"`
	Capacity              int       `json:"capacity"`
	TemperatureControlled bool      `json:"temperature_controlled"`
	TotalStock            int64     `json:"total_stock"`
	CreatedAt             time.Time `json:"created_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
