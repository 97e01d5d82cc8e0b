package data

import (
	"errors"
	"fmt"
)

var (
	ErrSupplierUnavailable = errors.New("order records source unavailable")
	ErrInvalidFilter       = errors.New("invalid filter")
)

type InvalidFilterError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", ErrInvalidFilter, e.Field, e.Value, e.Reason)
}

func (e *InvalidFilterError) Unwrap() error {
	return ErrInvalidFilter
}
