// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry instruments of the recording
// session and the wavtool command.
//
// Instruments are created from a [metric.MeterProvider]. [DefaultMetrics]
// uses the global provider, which is a no-op until the application installs
// one; tests should build their own with [NewMetrics] and an SDK
// ManualReader.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ik5/wavkit"

// Export kinds, used as the "kind" attribute.
const (
	KindSingle     = "single"
	KindPerChannel = "per_channel"
	KindMerge      = "merge"
	KindSplit      = "split"
	KindConvert    = "convert"
)

// Metrics holds the instruments. All fields are safe for concurrent use.
type Metrics struct {
	// CapturedSamples counts samples accepted by a session. Use with
	// attribute.Int("channel", ...).
	CapturedSamples metric.Int64Counter

	// ActiveSessions tracks sessions in the capturing state.
	ActiveSessions metric.Int64UpDownCounter

	// Exports counts finished exports. Use with attributes:
	//   attribute.String("kind", ...), attribute.String("status", ...)
	Exports metric.Int64Counter

	// ExportBytes counts bytes of WAV output produced.
	ExportBytes metric.Int64Counter

	// ExportDuration tracks how long an export takes.
	ExportDuration metric.Float64Histogram
}

var exportBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1,
}

// NewMetrics creates every instrument from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.CapturedSamples, err = m.Int64Counter("wavkit.capture.samples",
		metric.WithDescription("Samples accumulated by recording sessions, per channel."),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("wavkit.capture.active",
		metric.WithDescription("Recording sessions currently capturing."),
	); err != nil {
		return nil, err
	}
	if met.Exports, err = m.Int64Counter("wavkit.export.count",
		metric.WithDescription("WAV exports by kind and status."),
	); err != nil {
		return nil, err
	}
	if met.ExportBytes, err = m.Int64Counter("wavkit.export.bytes",
		metric.WithDescription("Bytes of WAV data produced by exports."),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	if met.ExportDuration, err = m.Float64Histogram("wavkit.export.duration",
		metric.WithDescription("Time spent resampling, quantizing and encoding an export."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(exportBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level instance built on
// [otel.GetMeterProvider]. Panics if instrument creation fails, which the
// global provider never does.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordCapture counts n samples accepted on channel.
func (m *Metrics) RecordCapture(ctx context.Context, channel, n int) {
	m.CapturedSamples.Add(ctx, int64(n),
		metric.WithAttributes(attribute.Int("channel", channel)),
	)
}

// RecordExport records one export of the given kind. size is the total
// number of bytes written; it is ignored when err is not nil.
func (m *Metrics) RecordExport(ctx context.Context, kind string, size int, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	kindAttr := attribute.String("kind", kind)
	m.Exports.Add(ctx, 1,
		metric.WithAttributes(kindAttr, attribute.String("status", status)),
	)
	m.ExportDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(kindAttr))

	if err == nil {
		m.ExportBytes.Add(ctx, int64(size), metric.WithAttributes(kindAttr))
	}
}
