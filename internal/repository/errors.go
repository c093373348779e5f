package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every entity-specific not-found error.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrBoardNotFound      = fmt.Errorf("board %w", ErrNotFound)
	ErrMemberNotFound     = fmt.Errorf("member %w", ErrNotFound)
	ErrTaskListNotFound   = fmt.Errorf("task list %w", ErrNotFound)
	ErrTaskNotFound       = fmt.Errorf("task %w", ErrNotFound)
	ErrLabelNotFound      = fmt.Errorf("label %w", ErrNotFound)
	ErrAttachmentNotFound = fmt.Errorf("attachment %w", ErrNotFound)

	ErrRefreshTokenNotFound = fmt.Errorf("refresh token %w", ErrNotFound)
)
