package service

import "errors"

var (
	// ErrCredentialsNotConfigured means the singleton Reddit API credential
	// row is missing or incomplete. Always fatal to the whole operation.
	ErrCredentialsNotConfigured = errors.New("reddit api credentials are not configured")

	// ErrNotFound covers missing rows and rows owned by another user.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")

	// ErrFetchDenied is returned when the saved listing cannot be read,
	// typically a missing 'read' scope or a revoked refresh token.
	ErrFetchDenied = errors.New("access to saved posts denied")

	// ErrAccountNotAuthorized means the linked account exists but holds no
	// usable refresh token.
	ErrAccountNotAuthorized = errors.New("reddit account is not authorized")

	ErrAlreadyPosted     = errors.New("post has already been published")
	ErrInvalidDateFormat = errors.New("invalid scheduled_date format")
)
