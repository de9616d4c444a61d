package cypher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"rostergraph/internal/roster"
	"rostergraph/lib/textutil"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("rostergraph.internal.cypher")

const resetStatement = "MATCH (n) DETACH DELETE n;"

type Options struct {
	Collisions CollisionPolicy
}

// Stats describes what an emitted script creates.
type Stats struct {
	Players       int
	HighSchools   int
	Relationships int
}

type edge struct {
	player string
	school string
}

// Emit writes the creation script of a resolution.
//
// Tokens are assigned before anything is written, so a collision under
// COLLISION_FAIL leaves the writer untouched.
func Emit(ctx context.Context, w io.Writer, res roster.Resolution, opts Options) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Emit")
	defer span.End()

	policy := opts.Collisions
	if policy == "" {
		policy = COLLISION_SUFFIX
	}
	registry := newTokenRegistry(policy)

	playerTokens := make([]string, len(res.Players))
	for i, p := range res.Players {
		token, err := registry.token(kindPlayer, p.Record.Name)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "player token collision")
			return Stats{}, err
		}
		playerTokens[i] = token
	}
	schoolTokens := make(map[string]string, len(res.HighSchools))
	for _, school := range res.HighSchools {
		token, err := registry.token(kindSchool, school)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "high school token collision")
			return Stats{}, err
		}
		schoolTokens[school] = token
	}

	var edges []edge
	for i, p := range res.Players {
		if p.HighSchool == "" {
			continue
		}
		school, ok := schoolTokens[p.HighSchool]
		if !ok {
			err := fmt.Errorf("player %q links to high school %q which has no node", p.Record.Name, p.HighSchool)
			span.RecordError(err)
			span.SetStatus(codes.Error, "dangling relationship")
			return Stats{}, err
		}
		edges = append(edges, edge{player: playerTokens[i], school: school})
	}

	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%s\n\n", resetStatement)
	for i, p := range res.Players {
		writePlayer(out, playerTokens[i], p)
	}
	for _, school := range res.HighSchools {
		fmt.Fprintf(out, "CREATE (%s:School:HighSchool {name: '%s'})\n", schoolTokens[school], textutil.StripQuotes(school))
	}
	writeRelationships(out, edges)

	if err := out.Flush(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write script")
		return Stats{}, err
	}

	stats := Stats{
		Players:       len(res.Players),
		HighSchools:   len(res.HighSchools),
		Relationships: len(edges),
	}
	span.SetAttributes(
		attribute.Int("players", stats.Players),
		attribute.Int("high_schools", stats.HighSchools),
		attribute.Int("relationships", stats.Relationships),
	)
	return stats, nil
}

func writePlayer(out *bufio.Writer, token string, p roster.ResolvedPlayer) {
	fmt.Fprintf(
		out,
		"CREATE (%s:Person:Player {name: '%s', position: '%s', homeCity: '%s', homeState: '%s', yearsOnRoster: %s})\n",
		token,
		textutil.StripQuotes(p.Record.Name),
		textutil.StripQuotes(p.Record.Position),
		textutil.StripQuotes(p.Record.City),
		textutil.StripQuotes(p.Record.State),
		formatYears(p.Years),
	)
}

// the final pair has neither a comma nor a line break
func writeRelationships(out *bufio.Writer, edges []edge) {
	if len(edges) == 0 {
		return
	}
	out.WriteString("CREATE\n")
	for i, e := range edges {
		fmt.Fprintf(out, "(%s)-[:GRADUATED_FROM]->(%s)", e.player, e.school)
		if i < len(edges)-1 {
			out.WriteString(",\n")
		}
	}
}

func formatYears(years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
