package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricOpsTotal       = "interner.ops.total"
	metricOpDuration     = "interner.op.duration.seconds"
	metricValuesInterned = "interner.values.interned"
	metricValuesDistinct = "interner.values.distinct"
	metricThroughput     = "interner.bench.throughput"
	metricEntries        = "interner.entries"
	metricMemory         = "interner.memory.bytes"

	attrOp       = "op"
	attrStatus   = "status"
	attrScenario = "scenario"
	attrKind     = "kind"

	// StatusOK marks a successful operation.
	StatusOK = "ok"
	// StatusError marks a failed operation.
	StatusError = "error"

	kindContent   = "content"
	kindAllocated = "allocated"
)

// durationBucketBoundaries covers 1ms to 10min for command workloads.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 600}

// Footprint is a point-in-time view of an interner's size.
type Footprint struct {
	Entries        int64
	ContentBytes   int64
	AllocatedBytes int64
}

// InternerMetrics holds the OTel instruments of the interner tools.
type InternerMetrics struct {
	meter      metric.Meter
	opsTotal   metric.Int64Counter
	opDuration metric.Float64Histogram
	interned   metric.Int64Counter
	distinct   metric.Int64Counter
	throughput metric.Float64Gauge
	entries    metric.Int64ObservableGauge
	memory     metric.Int64ObservableGauge
}

// NewInternerMetrics creates the instruments from the given meter.
func NewInternerMetrics(mt metric.Meter) (*InternerMetrics, error) {
	b := newMetricBuilder(mt)

	im := &InternerMetrics{
		meter:      mt,
		opsTotal:   b.counter(metricOpsTotal, "Total number of commands run", "{op}"),
		opDuration: b.histogram(metricOpDuration, "Command duration in seconds", "s", durationBucketBoundaries...),
		interned:   b.counter(metricValuesInterned, "Values passed to intern", "{value}"),
		distinct:   b.counter(metricValuesDistinct, "Values that minted a new symbol", "{value}"),
		throughput: b.floatGauge(metricThroughput, "Benchmark throughput per scenario", "{op}/s"),
		entries:    b.observableGauge(metricEntries, "Distinct values held by the interner", "{value}"),
		memory:     b.observableGauge(metricMemory, "Interner memory by kind", "By"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return im, nil
}

// RecordOp records a completed operation with its status and duration.
func (im *InternerMetrics) RecordOp(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	im.opsTotal.Add(ctx, 1, attrs)
	im.opDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordIntern records how many values were interned and how many of them
// were new.
func (im *InternerMetrics) RecordIntern(ctx context.Context, total, distinct int64) {
	im.interned.Add(ctx, total)
	im.distinct.Add(ctx, distinct)
}

// RecordThroughput records the measured rate of a benchmark scenario.
func (im *InternerMetrics) RecordThroughput(ctx context.Context, scenario string, opsPerSec float64) {
	im.throughput.Record(ctx, opsPerSec, metric.WithAttributes(attribute.String(attrScenario, scenario)))
}

// ObserveFootprint reports the footprint returned by probe on every
// collection. The returned function unregisters the callback.
func (im *InternerMetrics) ObserveFootprint(probe func() Footprint) (func() error, error) {
	reg, err := im.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		fp := probe()

		o.ObserveInt64(im.entries, fp.Entries)
		o.ObserveInt64(im.memory, fp.ContentBytes, metric.WithAttributes(attribute.String(attrKind, kindContent)))
		o.ObserveInt64(im.memory, fp.AllocatedBytes, metric.WithAttributes(attribute.String(attrKind, kindAllocated)))

		return nil
	}, im.entries, im.memory)
	if err != nil {
		return nil, fmt.Errorf("register footprint callback: %w", err)
	}

	return reg.Unregister, nil
}
