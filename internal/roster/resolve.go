package roster

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

type MergePolicy string

const (
	// MERGE_FIRST_SEEN keeps the record of a player's first season.
	MERGE_FIRST_SEEN MergePolicy = "first_seen"
	// MERGE_MOST_RECENT keeps the record of a player's latest season.
	MERGE_MOST_RECENT MergePolicy = "most_recent"
	// MERGE_MOST_COMPLETE replaces the record when a later one has more fields filled.
	MERGE_MOST_COMPLETE MergePolicy = "most_complete"
)

func ParseMergePolicy(value string) (MergePolicy, error) {
	switch MergePolicy(value) {
	case "":
		return MERGE_FIRST_SEEN, nil
	case MERGE_FIRST_SEEN, MERGE_MOST_RECENT, MERGE_MOST_COMPLETE:
		return MergePolicy(value), nil
	}
	return "", fmt.Errorf("unknown merge policy %q", value)
}

func (p MergePolicy) replaces(current, later PlayerRecord) bool {
	switch p {
	case MERGE_MOST_RECENT:
		return true
	case MERGE_MOST_COMPLETE:
		return later.filledFields() > current.filledFields()
	}
	return false
}

type ResolveOptions struct {
	Policy MergePolicy
	// AliasThreshold is the minimum Jaro-Winkler similarity for two names to be
	// reported as alias candidates, 0 disables alias detection.
	AliasThreshold float64
}

type ResolvedPlayer struct {
	Record PlayerRecord
	// Years lists every season the player appears in, in aggregation order.
	Years []int
	// HighSchool is the school the player is linked to, empty when unknown.
	HighSchool string
}

// Resolution is the deduplicated view of a SeasonMap.
type Resolution struct {
	Players     []ResolvedPlayer
	HighSchools []string
	Aliases     []AliasCandidate
}

// Player finds a resolved player by name.
func (r Resolution) Player(name string) (ResolvedPlayer, bool) {
	for _, p := range r.Players {
		if p.Record.Name == name {
			return p, true
		}
	}
	return ResolvedPlayer{}, false
}

// YearsOnRoster returns the years of every resolved player keyed by name.
func (r Resolution) YearsOnRoster() map[string][]int {
	out := make(map[string][]int, len(r.Players))
	for _, p := range r.Players {
		out[p.Record.Name] = p.Years
	}
	return out
}

// Resolve walks the seasons in order and merges players by name.
func Resolve(ctx context.Context, seasons SeasonMap, opts ResolveOptions) Resolution {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()

	policy := opts.Policy
	if policy == "" {
		policy = MERGE_FIRST_SEEN
	}

	index := map[string]int{}
	var players []ResolvedPlayer

	for _, season := range seasons.Seasons() {
		for _, record := range season.Players() {
			i, seen := index[record.Name]
			if !seen {
				index[record.Name] = len(players)
				players = append(players, ResolvedPlayer{
					Record:     record,
					Years:      []int{season.Year},
					HighSchool: record.HighSchool,
				})
				continue
			}

			current := &players[i]
			current.Years = append(current.Years, season.Year)
			if !policy.replaces(current.Record, record) {
				if current.Record != record {
					slog.DebugContext(ctx, "ignoring later record", "player", record.Name, "year", season.Year, "policy", string(policy))
				}
				continue
			}
			current.Record = record
			current.HighSchool = record.HighSchool
		}
	}

	var schools []string
	seenSchool := map[string]struct{}{}
	for _, p := range players {
		if p.HighSchool == "" {
			continue
		}
		if _, ok := seenSchool[p.HighSchool]; ok {
			continue
		}
		seenSchool[p.HighSchool] = struct{}{}
		schools = append(schools, p.HighSchool)
	}

	var aliases []AliasCandidate
	if opts.AliasThreshold > 0 {
		names := make([]string, len(players))
		for i, p := range players {
			names[i] = p.Record.Name
		}
		aliases = FindAliases(names, opts.AliasThreshold)
		for _, a := range aliases {
			slog.WarnContext(ctx, "possible alias", "left", a.Left, "right", a.Right, "similarity", a.Similarity)
		}
	}

	span.SetAttributes(
		attribute.Int("players", len(players)),
		attribute.Int("high_schools", len(schools)),
		attribute.Int("aliases", len(aliases)),
	)

	return Resolution{
		Players:     players,
		HighSchools: schools,
		Aliases:     aliases,
	}
}
