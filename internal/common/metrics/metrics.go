// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VendorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entsite_vendor_requests_total",
			Help: "Total outbound requests to the registry vendor by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	WebsitesFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entsite_websites_found_total",
			Help: "Website extraction outcomes",
		},
		[]string{"outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entsite_cache_lookups_total",
			Help: "Website cache lookups by result",
		},
		[]string{"result"},
	)

	LookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "entsite_lookup_duration_seconds",
			Help: "Duration of one full lookup per search key",
		},
		[]string{"stage"},
	)
)

// Outcome and result label values.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeEmpty    = "empty"
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	ResultHit       = "hit"
	ResultMiss      = "miss"
)

// Summary gathers the default registry and flattens entsite counters into a
// map for the end-of-run log line.
func Summary() map[string]float64 {
	out := make(map[string]float64)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return out
	}

	for _, fam := range families {
		name := fam.GetName()
		if len(name) < 8 || name[:8] != "entsite_" {
			continue
		}
		var total float64
		for _, m := range fam.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		out[name] = total
	}

	return out
}
