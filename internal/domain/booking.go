package domain

import "time"

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusProcessing BookingStatus = "processing"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusFailed     BookingStatus = "failed"
)

// ActiveStatuses are the statuses that hold a claim on a court slot.
var ActiveStatuses = []BookingStatus{StatusPending, StatusProcessing, StatusConfirmed}

type BookingType string

const (
	TypeDaily    BookingType = "daily"
	TypeMonthly  BookingType = "monthly"
	TypeFlexible BookingType = "flexible"
)

// CourtDetail is one court of a booking with its requested hour indices.
// Stored embedded in the booking row; sub-documents carry no identity of
// their own.
type CourtDetail struct {
	CourtID   string `json:"courtId"`
	Timeslots []int  `json:"timeslots"`
}

type CourtDetails []CourtDetail

type Booking struct {
	ID                  string        `gorm:"primaryKey;size:24"`
	UserID              string        `gorm:"index"`
	UserName            string
	CenterID            string        `gorm:"index"`
	CourtBookingDetails CourtDetails  `gorm:"serializer:json"`
	BookDate            time.Time     `gorm:"index"` // date only; hours live in timeslots
	Status              BookingStatus `gorm:"index"`
	Type                BookingType
	Price               int64 // computed once at creation, immutable after
	PointsEarned        int64 // set only on confirmation
	IsDeleted           bool  `gorm:"index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EarliestSlot returns the smallest requested hour across all courts.
func (b *Booking) EarliestSlot() (int, bool) {
	min, found := 0, false
	for _, d := range b.CourtBookingDetails {
		for _, ts := range d.Timeslots {
			if !found || ts < min {
				min, found = ts, true
			}
		}
	}
	return min, found
}

// LatestSlot returns the largest requested hour across all courts.
func (b *Booking) LatestSlot() (int, bool) {
	max, found := 0, false
	for _, d := range b.CourtBookingDetails {
		for _, ts := range d.Timeslots {
			if !found || ts > max {
				max, found = ts, true
			}
		}
	}
	return max, found
}

// PlayTime is the wall-clock start of the earliest requested hour.
func (b *Booking) PlayTime() (time.Time, bool) {
	h, ok := b.EarliestSlot()
	if !ok {
		return time.Time{}, false
	}
	d := b.BookDate
	return time.Date(d.Year(), d.Month(), d.Day(), h, 0, 0, 0, d.Location()), true
}

// Overlaps reports whether the two bookings claim a common court and hour.
// Center and date scoping is the caller's query.
func (b *Booking) Overlaps(details CourtDetails) bool {
	for _, mine := range b.CourtBookingDetails {
		for _, theirs := range details {
			if mine.CourtID != theirs.CourtID {
				continue
			}
			for _, a := range mine.Timeslots {
				for _, c := range theirs.Timeslots {
					if a == c {
						return true
					}
				}
			}
		}
	}
	return false
}
