package domain

import "time"

// User is the points projection seeded from user.update.profile events.
// Not authoritative; used only for discount-tier lookup.
type User struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Points    int64
	UpdatedAt time.Time
}
