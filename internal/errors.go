package models

import "errors"

var (
	ErrInvalidUUID          = errors.New("invalid flight id")
	ErrFlightNotFound       = errors.New("flight not found")
	ErrInsufficientCapacity = errors.New("not enough seats available")
	ErrInvalidCursor        = errors.New("invalid pagination cursor")
)
