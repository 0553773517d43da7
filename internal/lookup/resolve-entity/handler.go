// internal/lookup/resolve-entity/handler.go
package resolveentity

import (
	"context"
	"encoding/json"

	"entsite/internal/common/httpclient"
	"entsite/internal/common/metrics"
	"entsite/internal/models"
)

const StageName = "resolve-entity"

// selectConditionData is sent verbatim; the vendor expects this JSON string.
const selectConditionData = `{"status":"","sort_field":""}`

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	config *Config
	client *httpclient.Client
	logger Logger
}

func NewHandler(config *Config, client *httpclient.Client, log Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Resolve maps a free-text search key to the first matching registry entity.
// The first element of the result list wins; there is no disambiguation. Any
// failure (network, malformed response, empty list, missing fields) is
// logged and yields nil, which callers treat as "no parent for this key".
func (h *Handler) Resolve(ctx context.Context, searchKey string) *models.Entity {
	payload := searchRequest{
		QueryType:           h.config.QueryType,
		SearchKey:           searchKey,
		PageNo:              1,
		Range:               h.config.PageSize,
		SelectConditionData: selectConditionData,
	}

	resp, err := h.client.PostJSON(ctx, h.config.SearchURL, payload)
	if err != nil {
		metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeError).Inc()
		h.logger.Warn("entity search request failed", map[string]interface{}{
			"searchKey": searchKey,
			"error":     err.Error(),
		})
		return nil
	}

	var parsed searchResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeError).Inc()
		h.logger.Warn("entity search response is not well-formed JSON", map[string]interface{}{
			"searchKey": searchKey,
			"error":     err.Error(),
		})
		return nil
	}

	if parsed.Data == nil || len(parsed.Data.List) == 0 {
		metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeEmpty).Inc()
		h.logger.Info("no entity found for search key", map[string]interface{}{
			"searchKey": searchKey,
		})
		return nil
	}

	first := parsed.Data.List[0]
	if first.EntName == "" || first.EntID == "" {
		metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeError).Inc()
		h.logger.Warn("entity search result missing expected fields", map[string]interface{}{
			"searchKey": searchKey,
		})
		return nil
	}

	metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeOK).Inc()
	h.logger.Info("entity resolved", map[string]interface{}{
		"searchKey": searchKey,
		"entName":   first.EntName,
		"entid":     first.EntID,
	})

	return &models.Entity{Name: first.EntName, ID: first.EntID}
}
