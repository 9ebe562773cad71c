package metrics

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ledgerline/internal/common"
	"github.com/ternarybob/ledgerline/internal/interfaces"
	"github.com/ternarybob/ledgerline/internal/models"
)

// stage names the step an extraction reached; it is logged on failure.
type stage string

const (
	stageAwaitingFirstResponse stage = "awaiting_first_response"
	stageAwaitingCorrection    stage = "awaiting_correction"
	stageValidatingCorrection  stage = "validating_correction"
)

// Result is a successful extraction together with how it was reached.
type Result struct {
	Metrics   *models.Metrics
	Attempts  int
	Corrected bool
}

// Extractor runs the extraction pipeline against a ContentGenerator.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	generator interfaces.ContentGenerator
	schema    any
	logger    arbor.ILogger
}

// Compile-time assertion
var _ interfaces.MetricsExtractor = (*Extractor)(nil)

// NewExtractor creates an extractor using the reflected Metrics response schema.
func NewExtractor(generator interfaces.ContentGenerator, logger arbor.ILogger) *Extractor {
	return &Extractor{
		generator: generator,
		schema:    ResponseSchema(),
		logger:    logger,
	}
}

// Extract returns the validated metrics for text.
func (e *Extractor) Extract(ctx context.Context, text string) (*models.Metrics, error) {
	result, err := e.Run(ctx, text)
	if err != nil {
		return nil, err
	}
	return result.Metrics, nil
}

// Run performs one extraction. The first response is validated; if it is rejected the
// model gets exactly one corrective prompt carrying its own response. Every failure is an
// *ExtractionError.
func (e *Extractor) Run(ctx context.Context, text string) (*Result, error) {
	start := time.Now()
	logger := common.LoggerFromContext(ctx, e.logger)
	logger.Debug().
		Int("text_length", len(text)).
		Msg("Metrics extraction started")

	first, err := e.generator.GenerateJSON(ctx, BuildPrompt(text), e.schema)
	if err != nil {
		return nil, transportFailure(logger, stageAwaitingFirstResponse, 1, err)
	}

	metrics, firstErr := models.ParseMetrics(first)
	if firstErr == nil {
		return done(logger, metrics, 1, false, start), nil
	}

	logger.Warn().
		Err(firstErr).
		Int("response_length", len(first)).
		Msg("Validation failed on first attempt, requesting correction")

	corrected, err := e.generator.GenerateJSON(ctx, BuildCorrectionPrompt(first), e.schema)
	if err != nil {
		return nil, transportFailure(logger, stageAwaitingCorrection, 2, err)
	}

	metrics, err = models.ParseMetrics(corrected)
	if err != nil {
		logger.Error().
			Err(err).
			Str("stage", string(stageValidatingCorrection)).
			Int("response_length", len(corrected)).
			Dur("duration", time.Since(start)).
			Msg("Validation failed on corrected response")
		return nil, &ExtractionError{Kind: KindValidation, Attempts: 2, Err: err}
	}

	return done(logger, metrics, 2, true, start), nil
}

func done(logger arbor.ILogger, metrics *models.Metrics, attempts int, corrected bool, start time.Time) *Result {
	logger.Info().
		Int("attempts", attempts).
		Bool("corrected", corrected).
		Dur("duration", time.Since(start)).
		Msg("Metrics extracted")
	return &Result{Metrics: metrics, Attempts: attempts, Corrected: corrected}
}

func transportFailure(logger arbor.ILogger, at stage, attempts int, err error) error {
	logger.Error().
		Err(err).
		Str("stage", string(at)).
		Int("attempts", attempts).
		Msg("Metrics generation failed")
	return &ExtractionError{Kind: KindTransport, Attempts: attempts, Err: err}
}
