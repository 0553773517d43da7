// internal/lookup/fetch-websites/handler.go
package fetchwebsites

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"entsite/internal/models"
)

const StageName = "fetch-websites"

const DefaultWorkers = 5

// Extractor is the website lookup the fan-out schedules per child.
type Extractor interface {
	Extract(ctx context.Context, entName, entID string) (string, bool)
}

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	extractor Extractor
	logger    Logger
}

func NewHandler(extractor Extractor, log Logger) *Handler {
	return &Handler{
		extractor: extractor,
		logger: log.With(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Fill runs the extractor over every child on a pool bounded to workers
// concurrent tasks. Each task owns its own slice slot, so completion order
// does not matter. A single child's failure is logged and recorded as "no
// website" without disturbing siblings. The returned slice is sorted
// descending by ownership percentage, stable for equal percentages.
func (h *Handler) Fill(ctx context.Context, children []models.ChildInvestment, workers int) []models.ChildInvestment {
	if len(children) == 0 {
		return children
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	h.logger.Info("fetching subsidiary websites", map[string]interface{}{
		"children": len(children),
		"workers":  workers,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range children {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					h.logger.Error("website extraction panicked", map[string]interface{}{
						"entName": children[i].Entity.Name,
						"panic":   fmt.Sprint(r),
					})
					children[i].Website = ""
					children[i].WebsiteFound = false
				}
			}()

			site, found := h.extractor.Extract(gctx, children[i].Entity.Name, children[i].Entity.ID)
			children[i].Website = site
			children[i].WebsiteFound = found
			return nil
		})
	}

	// Tasks never return errors; failures degrade per child.
	_ = g.Wait()

	sort.SliceStable(children, func(i, j int) bool {
		return children[i].OwnershipPercent > children[j].OwnershipPercent
	})

	return children
}
