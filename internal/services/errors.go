package services

import "errors"

var (
	// ErrValidation marks bad input shape. Wrap it with the offending field.
	ErrValidation = errors.New("validation failed")
	// ErrInsufficientBalance is the business outcome when the balance does not
	// cover the exchange cost. Not a bug; reported as a denied operation.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNotFound surfaces a missing user or balance record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
