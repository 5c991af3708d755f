package datatransfer

import "errors"

var (
	// ErrInvalidFormat is returned when an import is not valid JSON or has the wrong shape.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrTooLarge is returned when an import exceeds MaxImportSize.
	ErrTooLarge = errors.New("file too large")

	// ErrUnknownKind is returned for a document kind that is not recognised.
	ErrUnknownKind = errors.New("unknown data type")

	// ErrNotClearable is returned when clearing a kind that holds configuration.
	ErrNotClearable = errors.New("data type cannot be cleared")
)
