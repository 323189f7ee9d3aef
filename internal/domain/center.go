package domain

import "time"

// PriceSlot is a half-open hour range, "HH:mm" strings parsed as integer
// hours ("17:00"–"19:00" covers hours 17 and 18).
type PriceSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Price     int64  `json:"price"`
}

type Pricing struct {
	Weekday []PriceSlot `json:"weekday"`
	Weekend []PriceSlot `json:"weekend"`
}

type StringList []string

// Center is a read-mostly pricing projection replicated from the center
// service. This service never mutates it beyond the replication upsert.
type Center struct {
	ID        string     `gorm:"primaryKey"`
	Name      string
	Courts    StringList `gorm:"serializer:json"`
	OpenHour  int
	CloseHour int
	Pricing   Pricing `gorm:"serializer:json"`
	UpdatedAt time.Time
}
