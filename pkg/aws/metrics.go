package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsRecorder is what middleware and services record through.
type MetricsRecorder interface {
	Record(ctx context.Context, points ...MetricPoint) error
	IsEnabled() bool
}

// MetricPoint is one data point, timestamped when it is sent.
type MetricPoint struct {
	Name       string
	Value      float64
	Unit       types.StandardUnit
	Dimensions map[string]string
}

// Count is a single occurrence of name.
func Count(name string, dimensions map[string]string) MetricPoint {
	return MetricPoint{Name: name, Value: 1, Unit: types.StandardUnitCount, Dimensions: dimensions}
}

// Latency is d in milliseconds.
func Latency(name string, d time.Duration, dimensions map[string]string) MetricPoint {
	return MetricPoint{Name: name, Value: float64(d.Milliseconds()), Unit: types.StandardUnitMilliseconds, Dimensions: dimensions}
}

type MetricsClient struct {
	client    *cloudwatch.Client
	namespace string
	enabled   bool
}

// NewMetricsClient creates a CloudWatch Metrics client. A disabled client
// accepts every call and sends nothing.
func NewMetricsClient(cfg sdkaws.Config, namespace string, enabled bool) *MetricsClient {
	if namespace == "" {
		namespace = "Furniture"
	}
	return &MetricsClient{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
		enabled:   enabled,
	}
}

// maxMetricBatch bounds a single PutMetricData call.
const maxMetricBatch = 20

// Record sends points in as few PutMetricData calls as the batch limit allows.
func (m *MetricsClient) Record(ctx context.Context, points ...MetricPoint) error {
	if !m.enabled || len(points) == 0 {
		return nil
	}

	now := time.Now()
	data := make([]types.MetricDatum, 0, len(points))
	for _, p := range points {
		data = append(data, types.MetricDatum{
			MetricName: sdkaws.String(p.Name),
			Value:      sdkaws.Float64(p.Value),
			Unit:       p.Unit,
			Timestamp:  sdkaws.Time(now),
			Dimensions: dimensionList(p.Dimensions),
		})
	}

	for len(data) > 0 {
		n := min(len(data), maxMetricBatch)
		if _, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  sdkaws.String(m.namespace),
			MetricData: data[:n],
		}); err != nil {
			return fmt.Errorf("put %d metrics to %s: %w", n, m.namespace, err)
		}
		data = data[n:]
	}
	return nil
}

func dimensionList(dimensions map[string]string) []types.Dimension {
	keys := make([]string, 0, len(dimensions))
	for k := range dimensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dims := make([]types.Dimension, 0, len(keys))
	for _, k := range keys {
		dims = append(dims, types.Dimension{Name: sdkaws.String(k), Value: sdkaws.String(dimensions[k])})
	}
	return dims
}

func (m *MetricsClient) IsEnabled() bool {
	return m.enabled
}

const (
	// HTTP metrics
	MetricHTTPRequests = "HTTPRequests"
	MetricHTTPLatency  = "HTTPLatency"
	MetricHTTP4xx      = "HTTP4xxErrors"
	MetricHTTP5xx      = "HTTP5xxErrors"

	// Business metrics
	MetricRecommendationsServed    = "RecommendationsServed"
	MetricRecommendationsEmpty     = "RecommendationsEmpty"
	MetricFeatureExtractionFailed  = "FeatureExtractionFailed"
	MetricFeatureExtractionLatency = "FeatureExtractionLatency"

	// System metrics
	MetricCacheHits   = "CacheHits"
	MetricCacheMisses = "CacheMisses"
)
