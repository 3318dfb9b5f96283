package entity

import "time"

// ActivityLog registro de acciones de usuarios (quién hizo qué sobre qué entidad).
type ActivityLog struct {
	ID         string
	Action     string
	EntityType string
	EntityID   string
	Details    string
	UserID     string
	Username   string
	EmployeeID string
	CreatedAt  time.Time
}
