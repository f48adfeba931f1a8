package booking

import (
	"errors"
	"fmt"
)

// ErrTrainNotFound reports an unknown train ID on the inventory operations.
var ErrTrainNotFound = errors.New("train not found")

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewBookingError(code, msg string) error {
	return &BookingError{
		Code:    code,
		Message: msg,
	}
}
