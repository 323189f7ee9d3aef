package domain

import "time"

type PassPostStatus string

const (
	PassActive    PassPostStatus = "ACTIVE"
	PassSold      PassPostStatus = "SOLD"
	PassExpired   PassPostStatus = "EXPIRED"
	PassCancelled PassPostStatus = "CANCELLED"
)

// PassPost is a resale listing for exactly one confirmed booking. At most one
// ACTIVE/SOLD post may reference a booking at a time.
type PassPost struct {
	ID            string `gorm:"primaryKey;size:24"`
	BookingID     string `gorm:"index"`
	SellerID      string `gorm:"index"`
	OriginalPrice int64
	ResalePrice   int64
	Description   string
	Status        PassPostStatus `gorm:"index"`
	ExpiresAt     time.Time      // the booking's play time; post elapses when play arrives
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InterestedUser is the "buyer clicked interested" join fact. Created and
// removed by toggling, never updated in place.
type InterestedUser struct {
	UserID    string `gorm:"primaryKey;size:64"`
	PostID    string `gorm:"primaryKey;size:24"`
	CreatedAt time.Time
}
