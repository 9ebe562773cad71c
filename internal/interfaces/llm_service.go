package interfaces

import (
	"context"
)

// ContentGenerator produces model output constrained to a JSON schema.
// Implementations wrap a single model provider and make exactly one upstream
// call per invocation.
type ContentGenerator interface {
	// GenerateJSON sends prompt as the sole user input and asks the model to
	// answer with JSON matching schema.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - prompt: Complete prompt text
	//   - schema: JSON schema value serialisable with encoding/json
	//
	// Returns:
	//   - string: Raw response text (expected, not guaranteed, to match schema)
	//   - error: Error if the call failed or produced no text
	GenerateJSON(ctx context.Context, prompt string, schema any) (string, error)

	// Close releases provider resources.
	Close() error
}
