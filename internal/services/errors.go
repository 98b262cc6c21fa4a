package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers. Cross-owner
// access is always reported as ErrNotFound so task existence is never
// confirmed to non-owners.
var (
	ErrNotFound               = errors.New("not found")
	ErrConflict               = errors.New("email or username already in use")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidCurrentPassword = errors.New("invalid current password")
	ErrInvalidResetToken      = errors.New("invalid or expired reset token")
	ErrNotTrashed             = errors.New("task is not in trash")
	ErrTitleRequired          = errors.New("title is required")
)

// WeakPasswordError carries the strength checker's feedback verbatim.
type WeakPasswordError struct {
	Feedback string
}

func (e *WeakPasswordError) Error() string {
	return e.Feedback
}
