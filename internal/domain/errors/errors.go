package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOrderAlreadyPaid   = errors.New("order already paid")
	ErrEmptyOrderNumber   = errors.New("empty order number")
	ErrInvalidOrderTotal  = errors.New("order totals do not add up")
	ErrUnauthorized       = errors.New("unauthorized")
)
