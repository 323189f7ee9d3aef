package events

import "github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"

// Routing keys crossing this service's boundary.
const (
	RKUserProfileUpdated = "user.update.profile" // consumed, user_events_exchange
	RKCenterUpdated      = "center.update.info"  // consumed, center_events_exchange
	RKUserSpamDetected   = "user.spam.detected"  // published, booking_exchange
	RKBookingConfirmed   = "booking.confirmed"   // published, booking_exchange
	RKPassInterest       = "pass.interest"       // published, booking_exchange
)

// UserProfile seeds the local points projection.
type UserProfile struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Points int64  `json:"points"`
}

// CenterInfo replicates the pricing projection from the center service.
type CenterInfo struct {
	CenterID  string         `json:"centerId"`
	Name      string         `json:"name"`
	Courts    []string       `json:"courts"`
	OpenHour  int            `json:"openHour"`
	CloseHour int            `json:"closeHour"`
	Pricing   domain.Pricing `json:"pricing"`
}

// SpamDetected tells the user service to soft-lock the account.
type SpamDetected struct {
	UserID    string `json:"userId"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"` // RFC3339
}

type BookingConfirmed struct {
	BookingID    string `json:"bookingId"`
	UserID       string `json:"userId"`
	PointsEarned int64  `json:"pointsEarned"`
}

// PassInterest notifies a seller that a buyer clicked interested.
type PassInterest struct {
	PostID   string `json:"postId"`
	SellerID string `json:"sellerId"`
	BuyerID  string `json:"buyerId"`
}
