package restaurants

import "errors"

var (
	// ErrInvalidInput means the caller supplied no location or an out-of-range filter.
	ErrInvalidInput = errors.New("invalid search input")
	// ErrProviderUnavailable means the provider could not be reached; retrying later may help.
	ErrProviderUnavailable = errors.New("places provider unavailable")
	// ErrAuthDenied means the provider rejected the API credential.
	ErrAuthDenied = errors.New("places request denied")
	// ErrQuotaExceeded means the provider's rate or budget limit was hit.
	ErrQuotaExceeded = errors.New("places quota exceeded")
	// ErrMalformedResponse means the provider answered with an unexpected shape.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrStorageUnavailable is absorbed by the cache and favorites stores; it
	// never surfaces through Search.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
