package domain

import "errors"

var (
	ErrWearableNotFound = errors.New("wearable not found")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrInvalidWearable  = errors.New("invalid wearable data")
	ErrInvalidFilter    = errors.New("invalid filter parameters")
	ErrInvalidInput     = errors.New("invalid input data")
	// ErrOwnWearable is returned when a buyer tries to purchase a wearable they created.
	ErrOwnWearable = errors.New("cannot purchase own wearable")
	ErrSoldOut     = errors.New("wearable is sold out")
	ErrRepository  = errors.New("repository error")
)
