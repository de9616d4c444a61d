package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"rostergraph/internal/cypher"
	"rostergraph/internal/roster"
	"rostergraph/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("rostergraph.internal.pipeline")

// Report summarizes a run, Failures and Aliases are diagnostics only.
type Report struct {
	Seasons    int
	Stats      cypher.Stats
	Failures   []roster.Failure
	Aliases    []roster.AliasCandidate
	Resolution roster.Resolution
}

func (r Report) RunStats() telemetry.RunStats {
	return telemetry.RunStats{
		Seasons:       r.Seasons,
		Players:       r.Stats.Players,
		HighSchools:   r.Stats.HighSchools,
		Relationships: r.Stats.Relationships,
		Failures:      len(r.Failures),
		Aliases:       len(r.Aliases),
	}
}

func (c Config) resolveOptions() roster.ResolveOptions {
	policy, _ := roster.ParseMergePolicy(c.MergePolicy)
	threshold := c.AliasThreshold
	if threshold < 0 {
		threshold = 0
	}
	return roster.ResolveOptions{Policy: policy, AliasThreshold: threshold}
}

func (c Config) emitOptions() cypher.Options {
	policy, _ := cypher.ParseCollisionPolicy(c.Collisions)
	return cypher.Options{Collisions: policy}
}

// Resolve fetches every configured year and merges the players, nothing is written.
func Resolve(ctx context.Context, cfg Config, src roster.Source) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	seasons, err := roster.Aggregate(ctx, src, cfg.Years(), cfg.RegionTable())
	if err != nil {
		return Report{}, err
	}
	res := roster.Resolve(ctx, seasons, cfg.resolveOptions())

	return Report{
		Seasons:    len(seasons.Seasons()),
		Failures:   seasons.Failures(),
		Aliases:    res.Aliases,
		Resolution: res,
	}, nil
}

// Run resolves the configured years and writes the creation script to w.
func Run(ctx context.Context, cfg Config, src roster.Source, w io.Writer) (Report, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	report, err := Resolve(ctx, cfg, src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve rosters")
		return Report{}, err
	}

	report.Stats, err = cypher.Emit(ctx, w, report.Resolution, cfg.emitOptions())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to emit script")
		return Report{}, err
	}

	telemetry.RecordRun(ctx, report.RunStats())
	slog.InfoContext(
		ctx, "script generated",
		"seasons", report.Seasons,
		"players", report.Stats.Players,
		"high_schools", report.Stats.HighSchools,
		"relationships", report.Stats.Relationships,
		"failures", len(report.Failures),
		"aliases", len(report.Aliases),
	)
	return report, nil
}

// WriteFile runs the pipeline into the file at path. The file is closed exactly
// once whatever happens and is removed when the run fails.
func WriteFile(ctx context.Context, cfg Config, src roster.Source, path string) (report Report, err error) {
	file, err := os.Create(path)
	if err != nil {
		return Report{}, err
	}
	defer func() {
		closeErr := file.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			err = errors.Join(err, removeIfExists(path))
		}
	}()

	return Run(ctx, cfg, src, file)
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
