package evidence

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Provider fetches one independent evidence collection (vendor registry,
// incident log, audit extracts, ...). Implementations live outside the
// engine; the collector only cares about the returned bundle shape.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (Bundle, error)
}

// Collector fans out to all registered providers concurrently and merges
// their bundles. A provider failure degrades to an empty collection
// rather than aborting the run.
type Collector struct {
	providers []Provider
	log       *zap.Logger
}

func NewCollector(log *zap.Logger, providers ...Provider) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{providers: providers, log: log}
}

// Collect gathers evidence from every provider and returns the merged
// bundle. It waits for all fetches before returning.
func (c *Collector) Collect(ctx context.Context) Bundle {
	results := make([]Bundle, len(c.providers))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range c.providers {
		g.Go(func() error {
			b, err := p.Fetch(ctx)
			if err != nil {
				c.log.Warn("evidence fetch failed, continuing with empty collection",
					zap.String("provider", p.Name()),
					zap.Error(err))
				return nil
			}
			results[i] = b
			return nil
		})
	}
	// Providers never return errors upward, so this cannot fail.
	_ = g.Wait()

	var merged Bundle
	for _, b := range results {
		merged.Merge(b)
	}
	return merged
}

// StaticProvider wraps an already-assembled bundle, for callers that
// load evidence from a file or request payload instead of live sources.
type StaticProvider struct {
	SourceName string
	Bundle     Bundle
}

func (s StaticProvider) Name() string { return s.SourceName }

func (s StaticProvider) Fetch(context.Context) (Bundle, error) { return s.Bundle, nil }
