// internal/lookup/query-equity/handler.go
package queryequity

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"entsite/internal/common/httpclient"
	"entsite/internal/common/metrics"
	"entsite/internal/models"
)

const StageName = "query-equity"

// Logger interface definition
type Logger interface {
	Debug(msg string, fields map[string]interface{})
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

// Query returns the child entities whose ownership percentage meets the
// threshold. A failed query and a parent with no investments both yield an
// empty slice; the vendor response gives no way to tell them apart and the
// caller does not need to.
func (h *Handler) Query(ctx context.Context, entID string, threshold int) []models.ChildInvestment {
	payload := graphRequest{
		EntID:    entID,
		DataType: h.config.DataType,
		IsExpand: 0,
	}

	resp, err := h.client.PostJSON(ctx, h.config.GraphURL, payload)
	if err != nil {
		metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeError).Inc()
		h.logger.Warn("equity graph request failed", map[string]interface{}{
			"entid": entID,
			"error": err.Error(),
		})
		return nil
	}

	var parsed graphResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeError).Inc()
		h.logger.Warn("equity graph response is not well-formed JSON", map[string]interface{}{
			"entid": entID,
			"error": err.Error(),
		})
		return nil
	}

	if !parsed.Success || parsed.Data == nil {
		metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeEmpty).Inc()
		return nil
	}

	var results []models.ChildInvestment
	for _, child := range parsed.Data.Children {
		percent, ok := parsePercent(child.FundedRatio)
		if !ok {
			h.logger.Debug("skipping child with malformed ownership percentage", map[string]interface{}{
				"entname":     child.EntName,
				"fundedRatio": child.FundedRatio,
			})
			continue
		}
		if percent < threshold {
			continue
		}
		results = append(results, models.ChildInvestment{
			Entity:           models.Entity{Name: child.EntName, ID: child.EntID},
			OwnershipPercent: percent,
		})
	}

	metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeOK).Inc()
	h.logger.Info("equity graph queried", map[string]interface{}{
		"entid":    entID,
		"children": len(results),
	})

	return results
}

// parsePercent accepts strings of the form digits, optionally with one
// decimal point, optionally with a trailing percent sign, and truncates
// toward zero. Anything else (negatives, scientific notation, empty) is
// rejected and the child excluded.
func parsePercent(s string) (int, bool) {
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, false
	}

	if strings.Count(s, ".") > 1 {
		return 0, false
	}
	digits := strings.Replace(s, ".", "", 1)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
