package telemetry

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RunStats is what a pipeline run reports once it finishes.
type RunStats struct {
	Seasons       int
	Players       int
	HighSchools   int
	Relationships int
	Failures      int
	Aliases       int
}

// RecordRun records the counts of a run and a single sample of the process stats.
func RecordRun(ctx context.Context, stats RunStats) {
	m := otel.GetMeterProvider().Meter("rostergraph.run")
	counts, err := m.Int64Gauge("run_entities")
	if err != nil {
		slog.WarnContext(ctx, "failed to create run gauge", "err", err)
		return
	}
	record := func(kind string, n int) {
		counts.Record(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
	}
	record("seasons", stats.Seasons)
	record("players", stats.Players)
	record("high_schools", stats.HighSchools)
	record("relationships", stats.Relationships)
	record("failures", stats.Failures)
	record("aliases", stats.Aliases)

	recordProcess(ctx, m)
}

func recordProcess(ctx context.Context, m metric.Meter) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	memoryGauge, err := m.Int64Gauge("allocated_mb")
	if err == nil {
		memoryGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
	}

	cpuUsage, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil || len(cpuUsage) == 0 {
		slog.DebugContext(ctx, "failed to read cpu usage", "err", err)
		return
	}
	cpuGauge, err := m.Float64Gauge("cpu_usage")
	if err == nil {
		cpuGauge.Record(ctx, cpuUsage[0])
	}
}
