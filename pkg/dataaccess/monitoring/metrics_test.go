package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMetricNames(t *testing.T) {
	// Touch a label set so both vectors have something to collect.
	MongoTotalRequests.WithLabelValues("test_dal", "ping", "-", "-").Inc()
	MongoLatency.WithLabelValues("test_dal", "ping", "-", "-").Observe(0)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	require.True(t, names["hound_dataaccess_mongo_total_requests"])
	require.True(t, names["hound_dataaccess_mongo_latency"])
}
