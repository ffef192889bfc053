package exprtree

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Names of the counters recorded by a Factory.
const (
	MetricHits      = "exprtree.factory.hits"
	MetricMisses    = "exprtree.factory.misses"
	MetricEvictions = "exprtree.factory.evictions"
)

const (
	kindConstant = "constant"
	kindVariable = "variable"
)

var kindAttrs = map[string]metric.MeasurementOption{
	kindConstant: metric.WithAttributes(attribute.String("kind", kindConstant)),
	kindVariable: metric.WithAttributes(attribute.String("kind", kindVariable)),
}

// factoryMetrics counts cache outcomes. Every lookup is exactly one hit or one
// miss; an eviction is an expired entry being dropped.
type factoryMetrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
}

func newFactoryMetrics(meter metric.Meter) (*factoryMetrics, error) {
	hits, err := meter.Int64Counter(MetricHits,
		metric.WithDescription("Factory lookups answered by an existing node"),
	)
	if err != nil {
		return nil, err
	}
	misses, err := meter.Int64Counter(MetricMisses,
		metric.WithDescription("Factory lookups that created a new node"),
	)
	if err != nil {
		return nil, err
	}
	evictions, err := meter.Int64Counter(MetricEvictions,
		metric.WithDescription("Expired cache entries removed from the factory"),
	)
	if err != nil {
		return nil, err
	}
	return &factoryMetrics{hits: hits, misses: misses, evictions: evictions}, nil
}

func noopFactoryMetrics() *factoryMetrics {
	m, err := newFactoryMetrics(noop.NewMeterProvider().Meter("exprtree"))
	if err != nil {
		panic("exprtree: noop meter failed: " + err.Error())
	}
	return m
}

func (m *factoryMetrics) hit(kind string) {
	m.hits.Add(context.Background(), 1, kindAttrs[kind])
}

func (m *factoryMetrics) miss(kind string) {
	m.misses.Add(context.Background(), 1, kindAttrs[kind])
}

func (m *factoryMetrics) evicted(kind string, n int) {
	if n == 0 {
		return
	}
	m.evictions.Add(context.Background(), int64(n), kindAttrs[kind])
}
