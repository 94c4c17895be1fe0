package service

import "errors"

var (
	// ErrNotFound is returned when a list or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous")

	// ErrExists is returned when a list name is already taken.
	ErrExists = errors.New("already exists")

	// ErrInvalidName is returned for empty or overlong names.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidQuantity is returned when a quantity is not a number.
	ErrInvalidQuantity = errors.New("quantity must be a number")
)

// IsUserError reports whether err is caused by user input rather than storage.
func IsUserError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAmbiguous) ||
		errors.Is(err, ErrExists) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidQuantity)
}
