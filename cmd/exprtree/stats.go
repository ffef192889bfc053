package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/zephyrtronium/exprtree"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Build every sample with one factory and report its cache use",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	f := exprtree.NewFactory(
		exprtree.WithLogger(newLogger(cmd)),
		exprtree.WithMeter(mp.Meter("exprtree")),
	)
	trees := make([]exprtree.Expr, 0, len(samples))
	for _, s := range samples {
		trees = append(trees, s.build(f))
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(cmd.Context(), &rm); err != nil {
		return fmt.Errorf("collecting metrics: %w", err)
	}
	st := f.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "trees: %d\n", len(trees))
	fmt.Fprintf(out, "predefined constants: %d\n", st.Predefined)
	fmt.Fprintf(out, "cached constants: %d\n", st.Constants)
	fmt.Fprintf(out, "cached variables: %d\n", st.Variables)
	for _, name := range []string{exprtree.MetricHits, exprtree.MetricMisses} {
		c := counterValues(&rm, name)
		fmt.Fprintf(out, "%s: constant=%d variable=%d\n", name, c["constant"], c["variable"])
	}
	runtime.KeepAlive(trees)
	return nil
}

// counterValues returns the data points of an int64 counter keyed by their
// kind attribute.
func counterValues(rm *metricdata.ResourceMetrics, name string) map[string]int64 {
	r := make(map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value("kind"); ok {
					r[v.AsString()] += dp.Value
				}
			}
		}
	}
	return r
}
