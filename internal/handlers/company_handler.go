package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ledgerline/internal/common"
	"github.com/ternarybob/ledgerline/internal/interfaces"
	"github.com/ternarybob/ledgerline/internal/models"
	"github.com/ternarybob/ledgerline/internal/services/registry"
)

// CompanyHandler serves registry lookups.
type CompanyHandler struct {
	registry interfaces.CompanyRegistry
	logger   arbor.ILogger
}

func NewCompanyHandler(registry interfaces.CompanyRegistry, logger arbor.ILogger) *CompanyHandler {
	return &CompanyHandler{
		registry: registry,
		logger:   logger,
	}
}

// GetCompanyHandler handles GET /company?business_id=...
// 404 when nothing usable came back from the registry, 422 when business_id is
// missing or the record could not be mapped.
func (h *CompanyHandler) GetCompanyHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	logger := common.LoggerFromContext(r.Context(), h.logger)

	req := models.BusinessIDRequest{BusinessID: r.URL.Query().Get("business_id")}
	if err := req.Validate(); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "business_id query parameter is required")
		return
	}

	profile, err := h.registry.Lookup(r.Context(), req.BusinessID)
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, profile)
	case errors.Is(err, registry.ErrMalformed):
		logger.Warn().Str("business_id", req.BusinessID).Err(err).Msg("Company profile could not be parsed")
		WriteError(w, http.StatusUnprocessableEntity, "Failed to parse company profile from data")
	default:
		logger.Warn().Str("business_id", req.BusinessID).Err(err).Msg("Company data could not be retrieved")
		WriteError(w, http.StatusNotFound, "Failed to retrieve company data")
	}
}
