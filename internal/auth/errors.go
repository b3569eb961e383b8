package auth

import (
	"errors"

	"pushauth/internal/validation"
)

// ValidationError carries the first failed request rule.
type ValidationError = validation.Error

var (
	// ErrCredentialsMismatch means no account exists for the email.
	ErrCredentialsMismatch = errors.New("credentials do not match")
	// ErrPasswordMismatch means the account exists but the password is wrong.
	ErrPasswordMismatch = errors.New("password does not match")
	ErrAccountBlocked   = errors.New("account blocked")
	// ErrPersistence wraps store and token failures that are reported to the
	// caller generically.
	ErrPersistence     = errors.New("persistence failure")
	ErrDeviceTokenSave = errors.New("could not save device token")
	ErrTokenRevoked    = errors.New("token has been revoked")
	ErrUnauthenticated = errors.New("no authenticated caller")
	// ErrDenylistUnavailable means a token could not be checked, not that it
	// is bad.
	ErrDenylistUnavailable = errors.New("token denylist unavailable")
)
