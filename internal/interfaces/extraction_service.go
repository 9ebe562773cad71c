package interfaces

import (
	"context"

	"github.com/ternarybob/ledgerline/internal/models"
)

// MetricsExtractor turns free text into a validated metrics record.
type MetricsExtractor interface {
	Extract(ctx context.Context, text string) (*models.Metrics, error)
}
