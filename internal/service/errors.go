package service

import "errors"

// Caller-visible error kinds. Handlers translate these into HTTP statuses;
// anything else is treated as an internal error. Every operation mutates
// state inside one transaction, so a returned error means nothing changed.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrConversion      = errors.New("unit conversion failed")
)
