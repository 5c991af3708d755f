package tickets

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a panel, option, ticket or thread does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyOpen is returned when the user already has an active ticket in the guild.
	ErrAlreadyOpen = errors.New("user already has an active ticket")

	// ErrPermissionDenied is returned when the actor may not perform the action.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation is returned when input is rejected before any mutation.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTitleFormat is returned when a title format has no user placeholder.
	ErrInvalidTitleFormat = fmt.Errorf("%w: title format must contain {username} or {userid}", ErrValidation)

	// ErrCloseNotRequested is returned when a close is confirmed without a pending request.
	ErrCloseNotRequested = errors.New("close was not requested or has expired")

	// ErrPlatformNotFound is returned by a Platform when the resource no longer exists.
	ErrPlatformNotFound = errors.New("platform resource not found")
)
