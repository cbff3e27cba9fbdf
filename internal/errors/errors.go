package errors

import (
	"errors"
)

// Sentinel errors returned by services and repositories. Handlers map these
// to HTTP status codes; nothing above the repository layer inspects driver
// error types.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrReplyNotFound        = errors.New("reply not found")
	ErrReplyContentRequired = errors.New("reply content is required")
	ErrUpvoteNotFound       = errors.New("upvote not found")
	ErrAlreadyUpvoted       = errors.New("already upvoted")
	ErrAuthorMissing        = errors.New("author not found")
	ErrNotOwner             = errors.New("not the resource owner")
	ErrWrongPassword        = errors.New("current password is incorrect")

	// Token verification failures. Observably distinct internally, but the
	// HTTP layer reports all of them with one generic message.
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token signature invalid")

	ErrSecretNotConfigured = errors.New("signing secret not configured")
)
