package database

import "errors"

// Sentinel errors the handlers map to HTTP statuses.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("user already exists")
	ErrInvalidOTP     = errors.New("invalid OTP")
	ErrOTPExpired     = errors.New("OTP expired")
	ErrInactiveUser   = errors.New("account is deactivated")
)
