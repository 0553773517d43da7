// internal/lookup/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entsite/internal/common/logger"
	"entsite/internal/models"
)

type stageLoggerAdapter struct {
	logger.Logger
}

func (a *stageLoggerAdapter) With(fields map[string]interface{}) Logger {
	return &stageLoggerAdapter{a.Logger.With(fields)}
}

func testLogger(t *testing.T) Logger {
	return &stageLoggerAdapter{logger.NewTestLogger(t)}
}

type stubResolver struct {
	entities map[string]*models.Entity
}

func (s *stubResolver) Resolve(_ context.Context, key string) *models.Entity {
	return s.entities[key]
}

type stubEquity struct {
	children []models.ChildInvestment
	calls    int
}

func (s *stubEquity) Query(_ context.Context, _ string, _ int) []models.ChildInvestment {
	s.calls++
	return s.children
}

type stubExtractor struct {
	sites map[string]string
}

func (s *stubExtractor) Extract(_ context.Context, entName, _ string) (string, bool) {
	site, ok := s.sites[entName]
	return site, ok && site != ""
}

type passthroughFiller struct {
	calls int
}

func (f *passthroughFiller) Fill(_ context.Context, children []models.ChildInvestment, _ int) []models.ChildInvestment {
	f.calls++
	return children
}

func newPipeline(t *testing.T, cfg *Config, r *stubResolver, e *stubEquity, x *stubExtractor, f *passthroughFiller) *Pipeline {
	return New(cfg, r, e, x, f, testLogger(t))
}

func TestLookup_FullPath(t *testing.T) {
	resolver := &stubResolver{entities: map[string]*models.Entity{
		"Acme": {Name: "Acme Holdings Ltd", ID: "e-1"},
	}}
	equity := &stubEquity{children: []models.ChildInvestment{
		{Entity: models.Entity{Name: "Sub A", ID: "c-1"}, OwnershipPercent: 60},
	}}
	extractor := &stubExtractor{sites: map[string]string{
		"Acme Holdings Ltd": "https://acme.example.com",
	}}
	filler := &passthroughFiller{}

	p := newPipeline(t, &Config{Threshold: 0, Workers: 5}, resolver, equity, extractor, filler)
	result := p.Lookup(context.Background(), "Acme")

	assert.True(t, result.ParentFound)
	assert.Equal(t, "Acme Holdings Ltd", result.ParentName)
	assert.Equal(t, "https://acme.example.com", result.OfficialWebsite)
	require.Len(t, result.Children, 1)
	assert.Equal(t, 1, filler.calls)
}

func TestLookup_UnresolvableKeyStillYieldsResult(t *testing.T) {
	equity := &stubEquity{}
	p := newPipeline(t, &Config{Threshold: 0, Workers: 5},
		&stubResolver{entities: map[string]*models.Entity{}},
		equity, &stubExtractor{}, &passthroughFiller{})

	result := p.Lookup(context.Background(), "NoSuchCo")

	assert.Equal(t, "NoSuchCo", result.SearchKey)
	assert.False(t, result.ParentFound)
	assert.Empty(t, result.ParentName)
	assert.Empty(t, result.OfficialWebsite)
	assert.Empty(t, result.Children)
	assert.Zero(t, equity.calls, "no equity query without a resolved parent")
}

func TestLookup_ThresholdOutOfRangeSkipsEquityQuery(t *testing.T) {
	for _, threshold := range []int{-1, 101, 500} {
		resolver := &stubResolver{entities: map[string]*models.Entity{
			"Acme": {Name: "Acme", ID: "e-1"},
		}}
		equity := &stubEquity{children: []models.ChildInvestment{
			{Entity: models.Entity{Name: "Sub", ID: "c-1"}, OwnershipPercent: 100},
		}}

		p := newPipeline(t, &Config{Threshold: threshold, Workers: 5},
			resolver, equity, &stubExtractor{}, &passthroughFiller{})
		result := p.Lookup(context.Background(), "Acme")

		assert.True(t, result.ParentFound)
		assert.Empty(t, result.Children)
		assert.Zero(t, equity.calls, "threshold %d must disable the subsidiary query", threshold)
	}
}

func TestLookup_ParentWithNoChildren(t *testing.T) {
	resolver := &stubResolver{entities: map[string]*models.Entity{
		"Solo": {Name: "Solo Corp", ID: "e-9"},
	}}
	filler := &passthroughFiller{}

	p := newPipeline(t, &Config{Threshold: 0, Workers: 5},
		resolver, &stubEquity{}, &stubExtractor{}, filler)
	result := p.Lookup(context.Background(), "Solo")

	assert.True(t, result.ParentFound)
	assert.Empty(t, result.Children)
	assert.Zero(t, filler.calls, "no fan-out without children")
}

func TestRunBatch_PreservesInputOrder(t *testing.T) {
	resolver := &stubResolver{entities: map[string]*models.Entity{
		"First":  {Name: "First Co", ID: "e-1"},
		"Second": {Name: "Second Co", ID: "e-2"},
	}}

	p := newPipeline(t, &Config{Threshold: 0, Workers: 5},
		resolver, &stubEquity{}, &stubExtractor{}, &passthroughFiller{})
	results := p.RunBatch(context.Background(), []string{"First", "Missing", "Second"})

	require.Len(t, results, 3)
	assert.Equal(t, "First Co", results[0].ParentName)
	assert.False(t, results[1].ParentFound)
	assert.Equal(t, "Second Co", results[2].ParentName)
}
