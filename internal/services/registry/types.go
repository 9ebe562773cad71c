// Package registry looks up companies in the Finnish Trade Register (YTJ) open data API
// and normalizes the first match into a models.CompanyProfile.
package registry

import (
	"errors"
	"fmt"
	"time"
)

// Lookup outcomes. Every failure seen by callers wraps exactly one of these.
var (
	// ErrNotFound means the registry returned nothing usable for the identifier.
	ErrNotFound = errors.New("company not found")
	// ErrMalformed means a company was returned but could not be mapped to a profile.
	ErrMalformed = errors.New("company data is malformed")
)

// Mapping errors returned by ParseCompanyProfile.
var (
	ErrNoCompanies    = errors.New("registry response contains no companies")
	ErrMissingField   = errors.New("required field missing")
	ErrInvalidDate    = errors.New("invalid registration date")
	ErrInvalidProfile = errors.New("company profile failed validation")
)

// FailureKind tags the internal cause behind a lookup failure.
type FailureKind string

const (
	FailureNotFound            FailureKind = "not_found"
	FailureMalformed           FailureKind = "malformed"
	FailureUpstreamUnavailable FailureKind = "upstream_unavailable"
)

// LookupError carries the internal cause of a failed lookup. It unwraps to
// ErrMalformed for FailureMalformed and to ErrNotFound otherwise.
type LookupError struct {
	Kind       FailureKind
	BusinessID string
	Err        error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("registry lookup %s failed (%s): %v", e.BusinessID, e.Kind, e.Err)
}

// Unwrap exposes both the public outcome and the underlying cause to errors.Is/As.
func (e *LookupError) Unwrap() []error {
	outcome := ErrNotFound
	if e.Kind == FailureMalformed {
		outcome = ErrMalformed
	}
	return []error{outcome, e.Err}
}

// APIError represents a non-2xx response from the registry API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("registry API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError is returned when the local limiter cannot admit a request before the context ends.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("registry rate limit exceeded, retry after %v", e.RetryAfter)
}
