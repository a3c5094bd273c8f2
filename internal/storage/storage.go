package storage

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserIDExists       = errors.New("user id already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrHotelNotFound      = errors.New("hotel not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrUnknownBookingType = errors.New("unknown booking type")
	ErrCacheMiss          = errors.New("snapshot is not cached")
)
