// Package worker metrics follow OpenTelemetry semantic conventions for batch
// processing instrumentation.
package worker

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	ItemDurationHistogramName  = "batch_item_duration_seconds"
	ItemsProcessedCounterName  = "batch_items_processed_total"
	ItemsFailedCounterName     = "batch_items_failed_total"
	RetryAttemptsCounterName   = "batch_item_retry_attempts_total"
	BatchDurationHistogramName = "batch_duration_seconds"
)

// Attribute keys for consistent labeling.
const (
	AttrItemResult   = "item_result" // success, failure
	AttrRetryAttempt = "retry_attempt"
)

// itemDurationBuckets covers typical per-item pipeline latencies: a quick
// metadata-only run lands around a second, a full transcode can take minutes.
var itemDurationBuckets = []float64{ //nolint:gochecknoglobals // Histogram boundary table
	0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600,
}

// PipelineMetrics collects OpenTelemetry metrics for batch item processing.
// A nil *PipelineMetrics is valid and records nothing.
type PipelineMetrics struct {
	itemDuration   metric.Float64Histogram
	itemsProcessed metric.Int64Counter
	itemsFailed    metric.Int64Counter
	retryAttempts  metric.Int64Counter
	batchDuration  metric.Float64Histogram
}

// NewPipelineMetrics creates the metric instruments on the global meter
// provider.
func NewPipelineMetrics() (*PipelineMetrics, error) {
	meter := otel.Meter("video-nugget/worker", metric.WithInstrumentationVersion("1.0.0"))

	itemDuration, err := meter.Float64Histogram(
		ItemDurationHistogramName,
		metric.WithDescription("Duration of one batch item's pipeline run including retries"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(itemDurationBuckets...),
	)
	if err != nil {
		return nil, err
	}

	itemsProcessed, err := meter.Int64Counter(
		ItemsProcessedCounterName,
		metric.WithDescription("Total batch items that produced a final result"),
	)
	if err != nil {
		return nil, err
	}

	itemsFailed, err := meter.Int64Counter(
		ItemsFailedCounterName,
		metric.WithDescription("Total batch items whose final result is failed"),
	)
	if err != nil {
		return nil, err
	}

	retryAttempts, err := meter.Int64Counter(
		RetryAttemptsCounterName,
		metric.WithDescription("Total retry attempts across all batch items"),
	)
	if err != nil {
		return nil, err
	}

	batchDuration, err := meter.Float64Histogram(
		BatchDurationHistogramName,
		metric.WithDescription("Wall-clock duration of a whole batch run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		itemDuration:   itemDuration,
		itemsProcessed: itemsProcessed,
		itemsFailed:    itemsFailed,
		retryAttempts:  retryAttempts,
		batchDuration:  batchDuration,
	}, nil
}

// RecordItem records one item's final outcome and duration.
func (m *PipelineMetrics) RecordItem(ctx context.Context, durationSeconds float64, success bool) {
	if m == nil {
		return
	}

	result := "success"
	if !success {
		result = "failure"
		m.itemsFailed.Add(ctx, 1)
	}
	attrs := metric.WithAttributes(attribute.String(AttrItemResult, result))

	m.itemsProcessed.Add(ctx, 1, attrs)
	m.itemDuration.Record(ctx, durationSeconds, attrs)
}

// RecordRetry records one retry attempt for an item.
func (m *PipelineMetrics) RecordRetry(ctx context.Context, attempt int) {
	if m == nil {
		return
	}
	m.retryAttempts.Add(ctx, 1, metric.WithAttributes(attribute.Int(AttrRetryAttempt, attempt)))
}

// RecordBatchDuration records the wall-clock duration of a completed batch.
func (m *PipelineMetrics) RecordBatchDuration(ctx context.Context, durationSeconds float64) {
	if m == nil {
		return
	}
	m.batchDuration.Record(ctx, durationSeconds)
}
