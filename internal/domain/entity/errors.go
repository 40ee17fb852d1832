package entity

import "errors"

var (
	ErrInvalidRoomCount     = errors.New("room count cannot be negative")
	ErrInvalidExtra         = errors.New("extra must have an id, a non-negative price and a positive quantity")
	ErrDuplicateExtra       = errors.New("extra selected more than once")
	ErrInvalidScheduledTime = errors.New("scheduled time must be in HH:MM format")
	ErrInvalidScheduledDate = errors.New("scheduled date must be in YYYY-MM-DD format")
	ErrIncompleteBooking    = errors.New("booking is missing service, address, date or time")
	ErrInvalidTransition    = errors.New("invalid booking status transition")
	ErrInvalidSession       = errors.New("invalid booking session id")

	ErrServiceNotFound = errors.New("service not found")
	ErrExtraNotFound   = errors.New("extra not found")
	ErrSuburbNotFound  = errors.New("suburb not found")
	ErrCleanerNotFound = errors.New("cleaner not found")
)
