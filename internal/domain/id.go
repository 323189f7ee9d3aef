package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID mints a 24-char hex id. The hex shape is load-bearing: the payment
// webhook correlates bookings by extracting this token from the payment
// description.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether s is a well-formed 24-char hex id.
func ValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}
