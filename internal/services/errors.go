package services

import "errors"

var (
	// ErrForbidden covers every case where the caller may not see or touch a
	// resource: someone else's, soft-deleted or missing.
	ErrForbidden = errors.New("this action is unauthorized")

	ErrDebitCardHasTransactions = errors.New("debit card has transactions")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsForbidden reports whether err should be rendered as 403.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrDebitCardHasTransactions)
}
