package usecase

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrIncompleteProfile = errors.New("profile has no skills or location")
	ErrInternal          = errors.New("internal error")
)
