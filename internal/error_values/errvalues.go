package errorvalues

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrHabitNotFound = errors.New("habit doesn't exists")
	ErrWrongOwner    = errors.New("habit belongs to different user")

	ErrFutureDate = errors.New("tracking date is in the future")

	ErrInvalidUPI    = errors.New("invalid upi id")
	ErrQRUnavailable = errors.New("qr rendering service unavailable")
)
