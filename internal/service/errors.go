package service

import "errors"

var (
	ErrConflict      = errors.New("slot_conflict")
	ErrNotFound      = errors.New("not_found")
	ErrForbidden     = errors.New("forbidden")
	ErrBadRequest    = errors.New("bad_request")
	ErrBookingLocked = errors.New("booking_locked") // hoarding cool-down active
)
