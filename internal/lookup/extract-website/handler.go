// internal/lookup/extract-website/handler.go
package extractwebsite

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"entsite/internal/common/cache"
	"entsite/internal/common/httpclient"
	"entsite/internal/common/metrics"
)

const StageName = "extract-website"

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

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
	cache  cache.Cache
	logger Logger
}

func NewHandler(config *Config, client *httpclient.Client, c cache.Cache, log Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
		cache:  c,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Extract fetches an entity's detail page and pulls the official website
// URL out of the fragment following the label marker. Results, including
// negative ones, are memoized per (name, id). A page without the marker or
// without an anchor is a normal "no website listed" outcome, not an error.
func (h *Handler) Extract(ctx context.Context, entName, entID string) (string, bool) {
	key := cacheKey(entName, entID)
	if site, hit := h.cache.Get(ctx, key); hit {
		metrics.CacheLookups.WithLabelValues(metrics.ResultHit).Inc()
		return site, site != ""
	}
	metrics.CacheLookups.WithLabelValues(metrics.ResultMiss).Inc()

	site := h.fetch(ctx, entName, entID)
	h.cache.Set(ctx, key, site)

	if site == "" {
		metrics.WebsitesFound.WithLabelValues(metrics.OutcomeNotFound).Inc()
		return "", false
	}
	metrics.WebsitesFound.WithLabelValues(metrics.OutcomeFound).Inc()
	return site, true
}

func (h *Handler) fetch(ctx context.Context, entName, entID string) string {
	pageURL := h.config.DetailURL(entName, entID)

	resp, err := h.client.Get(ctx, pageURL, acceptHTML)
	if err != nil {
		metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeError).Inc()
		h.logger.Warn("detail page request failed", map[string]interface{}{
			"entName": entName,
			"error":   err.Error(),
		})
		return ""
	}
	metrics.VendorRequests.WithLabelValues(StageName, metrics.OutcomeOK).Inc()

	return h.extractFromHTML(string(resp.Body), entName)
}

// extractFromHTML scans for the marker and parses only the bounded window
// after it. Full-document parsing is deliberately avoided: the fragment is
// known to sit right after the label.
func (h *Handler) extractFromHTML(html, entName string) string {
	start := strings.Index(html, h.config.Marker)
	if start == -1 {
		h.logger.Debug("website marker absent from detail page", map[string]interface{}{
			"entName": entName,
		})
		return ""
	}

	window := h.config.ScanWindow
	if window <= 0 {
		window = DefaultScanWindow
	}
	end := start + len(h.config.Marker) + window
	if end > len(html) {
		end = len(html)
	}
	fragment := html[start:end]

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		h.logger.Warn("failed to parse detail page fragment", map[string]interface{}{
			"entName": entName,
			"error":   err.Error(),
		})
		return ""
	}

	href, exists := doc.Find("a[href]").First().Attr("href")
	if !exists {
		return ""
	}

	return normalizeHref(href)
}

// normalizeHref makes protocol-relative hrefs explicit; everything else
// passes through unchanged.
func normalizeHref(href string) string {
	if strings.HasPrefix(href, "//") {
		return "http:" + href
	}
	return href
}

func cacheKey(entName, entID string) string {
	return entName + "\x00" + entID
}
