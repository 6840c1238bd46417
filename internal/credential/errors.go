package credential

import "errors"

var (
	// ErrDuplicateEmail is returned when the normalized email is already
	// registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable so callers cannot
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)
