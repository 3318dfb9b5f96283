package entity

import "time"

// Category agrupa productos del catálogo. El nombre es único.
type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}
