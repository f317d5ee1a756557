package usecase

import "errors"

// Errors returned by auth operations. Handlers translate these into
// flash messages and redirects; they are never shown raw to a client.
var (
	// ErrUsernameTaken indicates a registration attempt with a username
	// that already belongs to another account.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrUserNotFound indicates that no user matched the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a failed login. It deliberately does
	// not distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidRegistration indicates a registration payload that failed
	// validation. The wrapped message is safe to show to the user.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrSessionNotFound indicates the session referenced by a cookie no
	// longer exists in the store.
	ErrSessionNotFound = errors.New("session not found")
)
