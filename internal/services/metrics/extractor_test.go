package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ledgerline/internal/common"
)

// fakeGenerator implements interfaces.ContentGenerator with scripted responses
type fakeGenerator struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	prompts   []string
	schemas   []any
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)

	if call < len(f.errs) && f.errs[call] != nil {
		return "", f.errs[call]
	}
	if call < len(f.responses) {
		return f.responses[call], nil
	}
	return "", errors.New("unexpected call")
}

func (f *fakeGenerator) Close() error { return nil }

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// countingLogger counts the events written through it
type countingLogger struct {
	arbor.ILogger
	events int
}

func newCountingLogger() *countingLogger {
	return &countingLogger{ILogger: arbor.NewLogger()}
}

func (l *countingLogger) Debug() arbor.ILogEvent { l.events++; return l.ILogger.Debug() }
func (l *countingLogger) Info() arbor.ILogEvent { l.events++; return l.ILogger.Info() }
func (l *countingLogger) Warn() arbor.ILogEvent { l.events++; return l.ILogger.Warn() }
func (l *countingLogger) Error() arbor.ILogEvent { l.events++; return l.ILogger.Error() }

const scenarioText = "Total income hit 12.5M euros, net loss of 300k. Scope 1 and 2 emissions were 450 metric tons. Q4 2024."

func newTestExtractor(gen *fakeGenerator) *Extractor {
	return NewExtractor(gen, arbor.NewLogger())
}

func TestRun_ValidFirstResponse(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"income":12500000,"net_income":-300000,"emissions":450,"water_usage":null,"quarter":"Q4 2024"}`,
	}}

	result, err := newTestExtractor(gen).Run(context.Background(), scenarioText)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls(), "a valid first response must not trigger a correction")
	assert.Equal(t, 1, result.Attempts)
	assert.False(t, result.Corrected)

	m := result.Metrics
	require.NotNil(t, m.Income)
	assert.Equal(t, int64(12500000), *m.Income)
	require.NotNil(t, m.NetIncome)
	assert.Equal(t, -300000.0, *m.NetIncome)
	require.NotNil(t, m.Emissions)
	assert.Equal(t, 450.0, *m.Emissions)
	assert.Nil(t, m.WaterUsage)
	require.NotNil(t, m.Quarter)
	assert.Equal(t, "Q4 2024", *m.Quarter)

	assert.True(t, strings.HasSuffix(gen.prompts[0], scenarioText))
	assert.NotNil(t, gen.schemas[0])
}

func TestRun_CorrectionRecovers(t *testing.T) {
	invalid := `{"income":"12.5M","quarter":"Q4"}`
	gen := &fakeGenerator{responses: []string{
		invalid,
		`{"income":12500000,"net_income":null,"emissions":null,"water_usage":null,"quarter":"Q4"}`,
	}}

	result, err := newTestExtractor(gen).Run(context.Background(), "Income 12.5M in Q4")
	require.NoError(t, err)

	assert.Equal(t, 2, gen.calls())
	assert.Equal(t, 2, result.Attempts)
	assert.True(t, result.Corrected)
	assert.Equal(t, int64(12500000), *result.Metrics.Income)

	// The corrective prompt carries the rejected response verbatim
	assert.Equal(t, BuildCorrectionPrompt(invalid), gen.prompts[1])
	assert.Contains(t, gen.prompts[1], invalid)
}

func TestRun_CorrectionAlsoInvalid(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`not json`,
		`{"income":-5}`,
	}}

	result, err := newTestExtractor(gen).Run(context.Background(), "anything")
	assert.Nil(t, result)
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, KindValidation, extractionErr.Kind)
	assert.Equal(t, 2, extractionErr.Attempts)
	assert.True(t, errors.Is(err, ErrExtractionFailed))
	assert.False(t, errors.Is(err, ErrGenerationFailed))
	assert.Equal(t, 2, gen.calls(), "only one corrective call is allowed")
}

func TestRun_GenerationFailures(t *testing.T) {
	quota := errors.New("Error 429, Message: quota exceeded, Status: RESOURCE_EXHAUSTED")

	tests := []struct {
		name         string
		gen          *fakeGenerator
		wantCalls    int
		wantAttempts int
	}{
		{
			name:         "first call fails",
			gen:          &fakeGenerator{errs: []error{quota}},
			wantCalls:    1,
			wantAttempts: 1,
		},
		{
			name:         "corrective call fails",
			gen:          &fakeGenerator{responses: []string{`["not an object"]`}, errs: []error{nil, quota}},
			wantCalls:    2,
			wantAttempts: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestExtractor(tt.gen).Run(context.Background(), "text")
			require.Error(t, err)

			var extractionErr *ExtractionError
			require.True(t, errors.As(err, &extractionErr))
			assert.Equal(t, KindTransport, extractionErr.Kind)
			assert.Equal(t, tt.wantAttempts, extractionErr.Attempts)
			assert.True(t, errors.Is(err, ErrGenerationFailed))
			assert.True(t, errors.Is(err, quota))
			assert.Equal(t, tt.wantCalls, tt.gen.calls())
		})
	}
}

func TestExtract_AllNull(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"income":null,"net_income":null,"emissions":null,"water_usage":null,"quarter":null}`,
	}}

	m, err := newTestExtractor(gen).Extract(context.Background(), "The weather was pleasant all week.")
	require.NoError(t, err)
	assert.Nil(t, m.Income)
	assert.Nil(t, m.NetIncome)
	assert.Nil(t, m.Emissions)
	assert.Nil(t, m.WaterUsage)
	assert.Nil(t, m.Quarter)
	assert.Equal(t, 1, gen.calls())
}

func TestExtract_ConcurrentCallsAreIndependent(t *testing.T) {
	gen := &fakeGenerator{}
	for i := 0; i < 8; i++ {
		gen.responses = append(gen.responses, `{"quarter":"Q1"}`)
	}
	extractor := newTestExtractor(gen)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := extractor.Extract(context.Background(), "Q1")
			assert.NoError(t, err)
			if assert.NotNil(t, m) {
				assert.Equal(t, "Q1", *m.Quarter)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, gen.calls())
}

func TestRun_LogsThroughRequestLogger(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"income":"lots"}`, `{"income":1}`}}
	extractorLogger := newCountingLogger()
	requestLogger := newCountingLogger()
	extractor := NewExtractor(gen, extractorLogger)

	ctx := common.WithLogger(context.Background(), requestLogger)
	result, err := extractor.Run(ctx, "Income was 1 euro.")
	require.NoError(t, err)
	assert.True(t, result.Corrected)

	assert.Positive(t, requestLogger.events)
	assert.Zero(t, extractorLogger.events)
}
