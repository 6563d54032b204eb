package evidence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type failingProvider struct{}

func (failingProvider) Name() string { return "broken" }

func (failingProvider) Fetch(context.Context) (Bundle, error) {
	return Bundle{}, errors.New("registry unreachable")
}

func TestCollectorMergesAndDegradesFailures(t *testing.T) {
	c := NewCollector(zap.NewNop(),
		StaticProvider{SourceName: "audit", Bundle: Bundle{Controls: []Control{{ID: "CC1.1"}}}},
		failingProvider{},
		StaticProvider{SourceName: "vendors", Bundle: Bundle{Vendors: []VendorRecord{{ID: "v1"}}}},
	)

	got := c.Collect(context.Background())
	assert.Len(t, got.Controls, 1)
	assert.Len(t, got.Vendors, 1)
	assert.Empty(t, got.Incidents, "failed provider contributes an empty collection")
}

func TestCollectorNoProviders(t *testing.T) {
	c := NewCollector(nil)
	assert.True(t, c.Collect(context.Background()).Empty())
}
