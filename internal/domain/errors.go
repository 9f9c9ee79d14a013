package domain

import "errors"

var (
	// ErrNotFound is returned when a document is missing, including the
	// target of a list filter.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when a backend stays unreachable after retries.
	ErrUnavailable = errors.New("backend unavailable")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
