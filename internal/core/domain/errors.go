package domain

import "errors"

// Sentinel errors shared across services and repositories. Handlers map these
// onto HTTP statuses in the central error handler; everything not listed here
// is treated as an internal failure.
var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUserExists   = errors.New("username already taken")
	ErrUserNotFound = errors.New("user not found")

	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryInUse     = errors.New("category has recorded expenses")
	ErrCategoryNotFound  = errors.New("category not found")

	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrNotFoundOrForbidden is returned when a row-scoped delete matched
	// nothing: either the row does not exist or it belongs to another user.
	ErrNotFoundOrForbidden = errors.New("record not found")

	// ErrStorage marks a transient database failure that survived the
	// gateway's retry budget.
	ErrStorage = errors.New("storage unavailable")
)
