package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrBlankTitle indicates a search was requested without a movie title
	ErrBlankTitle = errors.New("movie title is required")

	// ErrInvalidK indicates the requested result count is not positive
	ErrInvalidK = errors.New("result count must be positive")

	// ErrServerOffline indicates the recommendation service is unreachable
	ErrServerOffline = errors.New("recommendation service is unreachable")

	// ErrMalformedResponse indicates the service returned a body that could not be decoded
	ErrMalformedResponse = errors.New("malformed response from recommendation service")
)
