package registry

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ledgerline/internal/common"
	"github.com/ternarybob/ledgerline/internal/interfaces"
	"github.com/ternarybob/ledgerline/internal/models"
)

// Fetcher is the raw transport used by Service. *Client satisfies it.
type Fetcher interface {
	FetchCompanyData(ctx context.Context, businessID string) ([]byte, error)
}

// Service resolves business identifiers to company profiles.
type Service struct {
	fetcher Fetcher
	logger  arbor.ILogger
}

// Compile-time assertion
var _ interfaces.CompanyRegistry = (*Service)(nil)

// NewService creates a registry lookup service over the given fetcher.
func NewService(fetcher Fetcher, logger arbor.ILogger) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Lookup fetches and maps the first company registered under businessID.
// Failures unwrap to ErrNotFound or ErrMalformed; the cause is logged and kept on *LookupError.
func (s *Service) Lookup(ctx context.Context, businessID string) (*models.CompanyProfile, error) {
	start := time.Now()
	logger := common.LoggerFromContext(ctx, s.logger)

	data, err := s.fetcher.FetchCompanyData(ctx, businessID)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			logger.Error().
				Str("business_id", businessID).
				Int("status", apiErr.StatusCode).
				Str("body", apiErr.Message).
				Msg("Registry returned an error status")
		} else {
			logger.Error().
				Str("business_id", businessID).
				Err(err).
				Msg("Registry request failed")
		}
		return nil, &LookupError{Kind: FailureUpstreamUnavailable, BusinessID: businessID, Err: err}
	}

	if isEmptyPayload(data) {
		logger.Warn().
			Str("business_id", businessID).
			Msg("Registry returned an empty payload")
		return nil, &LookupError{Kind: FailureNotFound, BusinessID: businessID, Err: ErrNoCompanies}
	}

	profile, err := ParseCompanyProfile(data)
	if err != nil {
		if errors.Is(err, ErrNoCompanies) {
			logger.Warn().
				Str("business_id", businessID).
				Msg("No companies found in registry response")
			return nil, &LookupError{Kind: FailureNotFound, BusinessID: businessID, Err: err}
		}
		logger.Error().
			Str("business_id", businessID).
			Err(err).
			Msg("Failed to map registry response to company profile")
		return nil, &LookupError{Kind: FailureMalformed, BusinessID: businessID, Err: err}
	}

	logger.Info().
		Str("business_id", profile.BusinessID).
		Int("names", len(profile.OperatingNames)).
		Dur("duration", time.Since(start)).
		Msg("Company profile resolved")

	return profile, nil
}
