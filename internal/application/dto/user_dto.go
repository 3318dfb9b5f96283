package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario autenticado (sin password).
type UserResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	IsSuperuser bool     `json:"is_superuser"`
	EmployeeID  string   `json:"employee_id,omitempty"`
	FullName    string   `json:"full_name,omitempty"`
	Position    string   `json:"position,omitempty"`
	WarehouseID string   `json:"warehouse_id,omitempty"`
	Sections    []string `json:"sections"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateEmployeeRequest crea usuario y empleado en un solo paso.
// Sin secciones se aplica el preset del cargo.
type CreateEmployeeRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=150"`
	Password    string   `json:"password" validate:"required,min=6"`
	FullName    string   `json:"full_name" validate:"required,max=255"`
	Position    string   `json:"position" validate:"required,oneof=admin storekeeper cashier accountant"`
	WarehouseID string   `json:"warehouse_id" validate:"omitempty,uuid"`
	Sections    []string `json:"sections" validate:"omitempty,dive,required"`
}

// UpdateEmployeeRequest cambios parciales del empleado.
type UpdateEmployeeRequest struct {
	FullName    *string   `json:"full_name" validate:"omitempty,max=255"`
	Position    *string   `json:"position" validate:"omitempty,oneof=admin storekeeper cashier accountant"`
	Status      *string   `json:"status" validate:"omitempty,oneof=active blocked"`
	WarehouseID *string   `json:"warehouse_id"`
	Sections    *[]string `json:"sections"`
	Password    *string   `json:"password" validate:"omitempty,min=6"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	FullName    string    `json:"full_name"`
	Position    string    `json:"position"`
	Status      string    `json:"status"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	Sections    []string  `json:"sections"`
	CreatedAt   time.Time `json:"created_at"`
}

// EmployeeListResponse lista paginada de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ActivityLogResponse una acción registrada.
type ActivityLogResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details"`
	UserID     string    `json:"user_id,omitempty"`
	Username   string    `json:"username,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityLogListResponse lista paginada del registro de acciones.
type ActivityLogListResponse struct {
	Items []ActivityLogResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// SectionResponse sección de acceso del catálogo.
type SectionResponse struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}
