// Package metrics turns free text into a validated models.Metrics record with one
// schema-constrained model call and at most one corrective re-prompt.
package metrics

import (
	"errors"
	"fmt"
)

var (
	// ErrExtractionFailed means the model answered twice and neither answer was a valid record.
	ErrExtractionFailed = errors.New("failed to extract metrics from provided text")
	// ErrGenerationFailed means a model call itself failed.
	ErrGenerationFailed = errors.New("metrics generation failed")
)

// Kind distinguishes the two ways an extraction can fail.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindValidation Kind = "validation"
)

// ExtractionError is returned by Extractor.Extract for every failure.
type ExtractionError struct {
	Kind     Kind
	Attempts int
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("metrics extraction failed (%s after %d attempt(s)): %v", e.Kind, e.Attempts, e.Err)
}

// Unwrap exposes ErrGenerationFailed or ErrExtractionFailed and the underlying cause.
func (e *ExtractionError) Unwrap() []error {
	sentinel := ErrExtractionFailed
	if e.Kind == KindTransport {
		sentinel = ErrGenerationFailed
	}
	return []error{sentinel, e.Err}
}
