package aws

import (
	"context"
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
)

func TestMetricPoints(t *testing.T) {
	c := Count(MetricCacheHits, nil)
	assert.Equal(t, 1.0, c.Value)
	assert.Equal(t, types.StandardUnitCount, c.Unit)

	l := Latency(MetricHTTPLatency, 1500*time.Millisecond, nil)
	assert.Equal(t, 1500.0, l.Value)
	assert.Equal(t, types.StandardUnitMilliseconds, l.Unit)
}

func TestDimensionList_SortedByName(t *testing.T) {
	dims := dimensionList(map[string]string{"Status": "2xx", "Method": "GET", "Path": "/api/products"})

	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = sdkaws.ToString(d.Name)
	}
	assert.Equal(t, []string{"Method", "Path", "Status"}, names)
	assert.Equal(t, "GET", sdkaws.ToString(dims[0].Value))
}

func TestMetricsClient_DisabledSendsNothing(t *testing.T) {
	m := NewMetricsClient(sdkaws.Config{Region: "us-east-1"}, "", false)
	assert.False(t, m.IsEnabled())
	assert.NoError(t, m.Record(context.Background(), Count(MetricHTTPRequests, nil)))
}
