package roster

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("rostergraph.internal.roster")

// Season is the roster of one year, players keep the order they were listed in.
type Season struct {
	Year    int
	order   []string
	players map[string]PlayerRecord
}

func newSeason(year int) *Season {
	return &Season{Year: year, players: map[string]PlayerRecord{}}
}

// put inserts or replaces a record, a replaced record keeps its original position.
func (s *Season) put(record PlayerRecord) {
	if _, exists := s.players[record.Name]; !exists {
		s.order = append(s.order, record.Name)
	}
	s.players[record.Name] = record
}

func (s *Season) Len() int {
	return len(s.order)
}

func (s *Season) Get(name string) (PlayerRecord, bool) {
	record, ok := s.players[name]
	return record, ok
}

// Players returns the season's records in listing order.
func (s *Season) Players() []PlayerRecord {
	out := make([]PlayerRecord, len(s.order))
	for i, name := range s.order {
		out[i] = s.players[name]
	}
	return out
}

// SeasonMap is every parsed season in aggregation order along with the parse failures.
type SeasonMap struct {
	seasons  []*Season
	byYear   map[int]*Season
	failures []Failure
}

// NewSeasonMap builds a SeasonMap from already parsed seasons, mostly useful in tests.
// Seasons sharing a year are folded into one, later records win.
func NewSeasonMap(seasons map[int][]PlayerRecord, order []int) SeasonMap {
	var b seasonBuilder
	for _, year := range order {
		for _, record := range seasons[year] {
			b.put(year, record)
		}
	}
	return b.build()
}

type seasonBuilder struct {
	seasons  []*Season
	byYear   map[int]*Season
	failures []Failure
}

func (b *seasonBuilder) season(year int) *Season {
	if b.byYear == nil {
		b.byYear = map[int]*Season{}
	}
	s, ok := b.byYear[year]
	if !ok {
		s = newSeason(year)
		b.byYear[year] = s
		b.seasons = append(b.seasons, s)
	}
	return s
}

func (b *seasonBuilder) hasFailures(year int) bool {
	return slices.ContainsFunc(b.failures, func(f Failure) bool {
		return f.Year == year
	})
}

// dropFailures forgets the failures of a season that is being replaced.
func (b *seasonBuilder) dropFailures(year int) {
	b.failures = slices.DeleteFunc(b.failures, func(f Failure) bool {
		return f.Year == year
	})
}

func (b *seasonBuilder) put(year int, record PlayerRecord) {
	b.season(year).put(record)
}

func (b *seasonBuilder) build() SeasonMap {
	return SeasonMap{seasons: b.seasons, byYear: b.byYear, failures: b.failures}
}

// Seasons returns the seasons in aggregation order.
func (m SeasonMap) Seasons() []*Season {
	out := make([]*Season, len(m.seasons))
	copy(out, m.seasons)
	return out
}

func (m SeasonMap) Season(year int) (*Season, bool) {
	s, ok := m.byYear[year]
	return s, ok
}

func (m SeasonMap) Failures() []Failure {
	out := make([]Failure, len(m.failures))
	copy(out, m.failures)
	return out
}

// ParseSeason parses every row of a page into the season of the given year.
// Records without a name are skipped, their failure is still reported.
func ParseSeason(year int, rows []Row, regions RegionTable) ([]PlayerRecord, []Failure) {
	var records []PlayerRecord
	var failures []Failure
	for _, row := range rows {
		record, rowFailures := ParseRow(year, row, regions)
		failures = append(failures, rowFailures...)
		if record.Name == "" {
			continue
		}
		records = append(records, record)
	}
	return records, failures
}

// PageYear extracts the numeric year of a page.
func PageYear(page Page) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(page.Year))
	if err != nil {
		return 0, fmt.Errorf("page %s has a non numeric year %q: %w", page.Locator, page.Year, err)
	}
	return year, nil
}

// Aggregate fetches and parses every requested year one after the other.
//
// The season key is the year printed in the page locator, not the requested year.
// Any fetch error aborts the aggregation.
func Aggregate(ctx context.Context, src Source, years []int, regions RegionTable) (SeasonMap, error) {
	ctx, span := tracer.Start(ctx, "Aggregate")
	defer span.End()

	var b seasonBuilder
	for _, requested := range years {
		page, err := src.Fetch(ctx, requested)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch roster page")
			return SeasonMap{}, FetchError{Year: requested, Err: err}
		}
		year, err := PageYear(page)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to read page year")
			return SeasonMap{}, FetchError{Year: requested, Err: err}
		}
		if year != requested {
			slog.WarnContext(ctx, "page year differs from requested year", "requested", requested, "page", year, "locator", page.Locator)
		}

		records, failures := ParseSeason(year, page.Rows, regions)
		season := b.season(year)
		if season.Len() > 0 || b.hasFailures(year) {
			slog.WarnContext(ctx, "replacing season that was already aggregated", "year", year, "locator", page.Locator)
			*season = *newSeason(year)
			b.dropFailures(year)
		}
		for _, record := range records {
			season.put(record)
		}
		for _, f := range failures {
			slog.WarnContext(ctx, "row failure", "year", f.Year, "player", f.Player, "kind", f.Kind.String(), "raw", f.Raw)
		}
		b.failures = append(b.failures, failures...)

		slog.DebugContext(ctx, "parsed season", "year", year, "rows", len(page.Rows), "players", season.Len(), "failures", len(failures))
	}

	result := b.build()
	span.SetAttributes(
		attribute.Int("seasons", len(result.seasons)),
		attribute.Int("failures", len(result.failures)),
	)
	return result, nil
}
