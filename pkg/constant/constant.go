package constant

import "time"

const (
	// DefaultTokenExpiry is how long an issued session token stays valid.
	DefaultTokenExpiry = 24 * time.Hour

	// Attempt throttling defaults for the login/signup endpoints.
	DefaultRateLimitMax    = 20
	DefaultRateLimitWindow = time.Hour

	// UnknownClientKey is used when no client address can be determined.
	UnknownClientKey = "unknown"

	// Endpoint classes tracked independently by the attempt limiter.
	RateLimitClassLogin  = "login"
	RateLimitClassSignup = "signup"

	// UploadKeyPrefix is the object-storage prefix for post images.
	UploadKeyPrefix = "blog-images/"
)
