package domain

import "time"

// User represents a registered author of the system. PasswordHash never
// leaves the service layer; outward-facing representations are built from
// the remaining fields only.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
