package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

const (
	metricNamespace = "ContactKeeper/API"
	flushInterval   = 60 * time.Second
	maxBatchSize    = 20 // PutMetricData limit per call
)

// Metrics buffers per-request datapoints and flushes them to CloudWatch in
// the background. A nil *Metrics is a valid no-op receiver, so callers
// never need to branch on whether metrics are enabled.
type Metrics struct {
	client *cloudwatch.Client
	logger *zap.Logger

	mu     sync.Mutex
	buffer []cwtypes.MetricDatum

	stop chan struct{}
	done chan struct{}
}

// NewMetrics creates a metrics publisher and starts its flush loop
func NewMetrics(client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	m := &Metrics{
		client: client,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go m.run()
	return m
}

// RecordRequest buffers one request's count and latency datapoints
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	dimensions := []cwtypes.Dimension{
		{Name: aws.String("Route"), Value: aws.String(route)},
		{Name: aws.String("Method"), Value: aws.String(method)},
		{Name: aws.String("Status"), Value: aws.String(statusClass(status))},
	}
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.buffer = append(m.buffer,
		cwtypes.MetricDatum{
			MetricName: aws.String("RequestCount"),
			Dimensions: dimensions,
			Timestamp:  aws.Time(now),
			Unit:       cwtypes.StandardUnitCount,
			Value:      aws.Float64(1),
		},
		cwtypes.MetricDatum{
			MetricName: aws.String("RequestLatency"),
			Dimensions: dimensions,
			Timestamp:  aws.Time(now),
			Unit:       cwtypes.StandardUnitMilliseconds,
			Value:      aws.Float64(float64(duration.Milliseconds())),
		},
	)
}

// Close flushes any buffered datapoints and stops the background loop
func (m *Metrics) Close() {
	if m == nil {
		return
	}
	close(m.stop)
	<-m.done
}

func (m *Metrics) run() {
	defer close(m.done)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.flush()
		case <-m.stop:
			m.flush()
			return
		}
	}
}

func (m *Metrics) flush() {
	m.mu.Lock()
	pending := m.buffer
	m.buffer = nil
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for start := 0; start < len(pending); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(pending) {
			end = len(pending)
		}
		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(metricNamespace),
			MetricData: pending[start:end],
		})
		if err != nil {
			// Metrics are best effort; drop the batch and keep serving
			m.logger.Warn("failed to publish metrics", zap.Error(err))
			return
		}
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
