// internal/lookup/pipeline/pipeline.go

// Package pipeline chains the lookup stages for one search key: resolve the
// entity, fetch the parent website, query the equity graph, then fan out
// over the children. Keys in a batch run strictly one at a time; only the
// per-parent website fan-out is concurrent.
package pipeline

import (
	"context"
	"time"

	"entsite/internal/common/metrics"
	"entsite/internal/models"
)

type Resolver interface {
	Resolve(ctx context.Context, searchKey string) *models.Entity
}

type EquityQuerier interface {
	Query(ctx context.Context, entID string, threshold int) []models.ChildInvestment
}

type WebsiteExtractor interface {
	Extract(ctx context.Context, entName, entID string) (string, bool)
}

type WebsiteFiller interface {
	Fill(ctx context.Context, children []models.ChildInvestment, workers int) []models.ChildInvestment
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Config struct {
	// Threshold is the minimum ownership percentage, inclusive. Values
	// outside [0,100] disable the subsidiary query entirely.
	Threshold int

	// Workers bounds the subsidiary website fan-out.
	Workers int
}

type Pipeline struct {
	config    *Config
	resolver  Resolver
	equity    EquityQuerier
	extractor WebsiteExtractor
	filler    WebsiteFiller
	logger    Logger
}

func New(config *Config, resolver Resolver, equity EquityQuerier, extractor WebsiteExtractor, filler WebsiteFiller, log Logger) *Pipeline {
	return &Pipeline{
		config:    config,
		resolver:  resolver,
		equity:    equity,
		extractor: extractor,
		filler:    filler,
		logger:    log,
	}
}

// Lookup runs the full pipeline for one search key. An unresolvable key
// yields an empty result that still carries the key; it is reported, not
// dropped.
func (p *Pipeline) Lookup(ctx context.Context, searchKey string) models.LookupResult {
	start := time.Now()
	defer func() {
		metrics.LookupDuration.WithLabelValues("lookup").Observe(time.Since(start).Seconds())
	}()

	result := models.LookupResult{SearchKey: searchKey}

	entity := p.resolver.Resolve(ctx, searchKey)
	if entity == nil {
		return result
	}
	result.ParentName = entity.Name
	result.ParentFound = true

	if site, found := p.extractor.Extract(ctx, entity.Name, entity.ID); found {
		result.OfficialWebsite = site
	}

	if p.config.Threshold < 0 || p.config.Threshold > 100 {
		p.logger.Warn("ownership threshold out of range, skipping subsidiary query", map[string]interface{}{
			"threshold": p.config.Threshold,
		})
		return result
	}

	children := p.equity.Query(ctx, entity.ID, p.config.Threshold)
	if len(children) == 0 {
		return result
	}

	result.Children = p.filler.Fill(ctx, children, p.config.Workers)

	p.logger.Info("lookup complete", map[string]interface{}{
		"searchKey": searchKey,
		"parent":    entity.Name,
		"children":  len(result.Children),
	})

	return result
}

// RunBatch processes keys sequentially in input order.
func (p *Pipeline) RunBatch(ctx context.Context, searchKeys []string) []models.LookupResult {
	results := make([]models.LookupResult, 0, len(searchKeys))
	for _, key := range searchKeys {
		results = append(results, p.Lookup(ctx, key))
	}
	return results
}
