package entity

import "time"

// User cuenta de acceso. Username único; el hash es bcrypt y nunca se expone.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsSuperuser  bool
	IsActive     bool
	CreatedAt    time.Time
}
