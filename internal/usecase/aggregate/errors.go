package aggregate

import "errors"

// Errors returned by providers. The pipeline treats both as an empty result.
var (
	// ErrMissingCredential indicates that the provider has no API key configured.
	ErrMissingCredential = errors.New("provider credential not configured")

	// ErrProviderUnavailable indicates a transport failure, timeout, non-2xx
	// response or open circuit.
	ErrProviderUnavailable = errors.New("provider unavailable")
)
