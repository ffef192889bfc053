package exprtree

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// FactoryOption is an option used when creating a factory.
type FactoryOption interface {
	factoryOption()
}

type (
	logopt   struct{ l *slog.Logger }
	meteropt struct{ m metric.Meter }
)

func (logopt) factoryOption()   {}
func (meteropt) factoryOption() {}

// WithLogger sets the logger the factory uses to report cache activity at
// debug level. If no logger is given, or it is nil, slog.Default() is used.
func WithLogger(l *slog.Logger) FactoryOption {
	return logopt{l}
}

// WithMeter sets the meter used to create the factory's cache counters. If no
// meter is given, counters are discarded.
func WithMeter(m metric.Meter) FactoryOption {
	return meteropt{m}
}
