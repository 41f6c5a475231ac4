package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsManager_CatalogCounters(t *testing.T) {
	m := NewMetricsManager("storefront")

	m.ObserveFetch("mongo", "success")
	m.ObserveFetch("mongo", "error")
	m.ObserveFetch("mongo", "error")
	m.ObserveFallback("error")
	m.ObservePipeline(2 * time.Millisecond)
	m.OrderPlaced()
	m.OrderStatusChanged("shipped")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogFetchTotal.WithLabelValues("mongo", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CatalogFetchTotal.WithLabelValues("mongo", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogFallbackTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersPlacedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrderStatusTransition.WithLabelValues("shipped")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PipelineDuration))
}
