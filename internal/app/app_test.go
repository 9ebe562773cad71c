package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ledgerline/internal/common"
)

func TestNew_RequiresGemini(t *testing.T) {
	cfg := common.NewDefaultConfig()

	app, err := New(context.Background(), cfg, arbor.NewLogger())
	assert.Nil(t, app)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrGeminiNotConfigured))
}

func TestNew_WiresServicesAndHandlers(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.BaseURL = "http://127.0.0.1:1"

	app, err := New(context.Background(), cfg, arbor.NewLogger())
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.RegistryService)
	assert.NotNil(t, app.ContentGenerator)
	assert.NotNil(t, app.MetricsExtractor)
	assert.NotNil(t, app.APIHandler)
	assert.NotNil(t, app.CompanyHandler)
	assert.NotNil(t, app.ExtractHandler)
}

func TestNewRegistryService_UsesConfig(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Registry.BaseURL = "http://127.0.0.1:1/companies"

	service := NewRegistryService(cfg, arbor.NewLogger())
	require.NotNil(t, service)

	// Nothing listens on port 1, so the lookup collapses to not-found
	_, err := service.Lookup(context.Background(), "0112038-9")
	require.Error(t, err)
}
