package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ledgerline/internal/common"
	"github.com/ternarybob/ledgerline/internal/interfaces"
	"github.com/ternarybob/ledgerline/internal/models"
)

// ExtractHandler serves metrics extraction.
type ExtractHandler struct {
	extractor interfaces.MetricsExtractor
	logger    arbor.ILogger
}

func NewExtractHandler(extractor interfaces.MetricsExtractor, logger arbor.ILogger) *ExtractHandler {
	return &ExtractHandler{
		extractor: extractor,
		logger:    logger,
	}
}

// ExtractMetricsHandler handles POST /extract with body {"text": "..."}.
// Invalid request bodies and extraction failures are both reported as 422;
// missing values come back as null.
func (h *ExtractHandler) ExtractMetricsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	logger := common.LoggerFromContext(r.Context(), h.logger)

	var req models.TextRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "text field is required")
		return
	}

	metrics, err := h.extractor.Extract(r.Context(), *req.Text)
	if err != nil {
		logger.Warn().Err(err).Int("text_length", len(*req.Text)).Msg("Metrics extraction failed")
		WriteError(w, http.StatusUnprocessableEntity, "Failed to extract metrics from provided text")
		return
	}

	WriteJSON(w, http.StatusOK, metrics)
}
