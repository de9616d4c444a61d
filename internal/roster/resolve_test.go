package roster

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func twoSeasons(t *testing.T) SeasonMap {
	src := &fakeSource{pages: map[int]Page{
		2019: page("2019",
			[]string{"7", "Doe, John", "QB", "6-2", "Pittsburgh, Pa./Central HS"},
		),
		2020: page("2020",
			[]string{"7", "Doe, John", "QB", "6-2", "Pittsburgh, Pa./Central Catholic"},
			[]string{"4", "Roe, Jane", "WR", "6-0", "Erie, Pa./McDowell"},
		),
	}}
	seasons, err := Aggregate(context.Background(), src, []int{2019, 2020}, DefaultRegions)
	require.NoError(t, err)
	return seasons
}

func TestResolveFirstSeen(t *testing.T) {
	res := Resolve(context.Background(), twoSeasons(t), ResolveOptions{})

	require.Len(t, res.Players, 2)
	require.Equal(t, map[string][]int{
		"John Doe": {2019, 2020},
		"Jane Roe": {2020},
	}, res.YearsOnRoster())

	john, ok := res.Player("John Doe")
	require.True(t, ok)
	require.Equal(t, "Central HS", john.HighSchool)
	require.Equal(t, "Central HS", john.Record.HighSchool)

	require.Equal(t, []string{"Central HS", "McDowell"}, res.HighSchools)
}

func TestResolveMostRecent(t *testing.T) {
	res := Resolve(context.Background(), twoSeasons(t), ResolveOptions{Policy: MERGE_MOST_RECENT})

	john, ok := res.Player("John Doe")
	require.True(t, ok)
	require.Equal(t, "Central Catholic", john.HighSchool)
	require.Equal(t, []int{2019, 2020}, john.Years)
	// a school nobody links to any more is not emitted
	require.Equal(t, []string{"Central Catholic", "McDowell"}, res.HighSchools)
}

func TestResolveMostComplete(t *testing.T) {
	seasons := NewSeasonMap(map[int][]PlayerRecord{
		2010: {{Name: "A", Position: "QB"}},
		2011: {{Name: "A", Position: "QB", City: "Erie", State: "PA", HighSchool: "McDowell"}},
		2012: {{Name: "A", Position: "WR", HighSchool: "Other"}},
	}, []int{2010, 2011, 2012})

	res := Resolve(context.Background(), seasons, ResolveOptions{Policy: MERGE_MOST_COMPLETE})
	expected := []ResolvedPlayer{{
		Record:     PlayerRecord{Name: "A", Position: "QB", City: "Erie", State: "PA", HighSchool: "McDowell"},
		Years:      []int{2010, 2011, 2012},
		HighSchool: "McDowell",
	}}
	if diff := cmp.Diff(expected, res.Players); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestResolveSkipsEmptySchool(t *testing.T) {
	seasons := NewSeasonMap(map[int][]PlayerRecord{
		2010: {{Name: "A"}, {Name: "B", HighSchool: "X"}, {Name: "C", HighSchool: "X"}},
	}, []int{2010})

	res := Resolve(context.Background(), seasons, ResolveOptions{})
	require.Equal(t, []string{"X"}, res.HighSchools)
}

func TestParseMergePolicy(t *testing.T) {
	policy, err := ParseMergePolicy("")
	require.NoError(t, err)
	require.Equal(t, MERGE_FIRST_SEEN, policy)

	policy, err = ParseMergePolicy("most_recent")
	require.NoError(t, err)
	require.Equal(t, MERGE_MOST_RECENT, policy)

	_, err = ParseMergePolicy("latest")
	require.Error(t, err)
}

func TestFindAliases(t *testing.T) {
	aliases := FindAliases([]string{"Jonathan Doe", "Jane Roe", "Jonathon Doe"}, 0.9)
	require.Len(t, aliases, 1)
	require.Equal(t, "Jonathan Doe", aliases[0].Left)
	require.Equal(t, "Jonathon Doe", aliases[0].Right)
	require.GreaterOrEqual(t, aliases[0].Similarity, 0.9)

	require.Empty(t, FindAliases([]string{"Jonathan Doe", "Jonathon Doe"}, 0))
}

// Every appearance of a player is counted exactly once and every distinct name
// is resolved exactly once.
func TestResolveCounts(t *testing.T) {
	rndm := rand.New(rand.NewSource(42))
	pool := make([]string, 40)
	for i := range pool {
		pool[i] = fmt.Sprintf("Player %d", i)
	}

	data := map[int][]PlayerRecord{}
	var years []int
	for year := 2009; year <= 2020; year++ {
		years = append(years, year)
		for _, name := range pool {
			if rndm.Intn(3) == 0 {
				data[year] = append(data[year], PlayerRecord{Name: name, HighSchool: "HS " + name})
			}
		}
	}
	seasons := NewSeasonMap(data, years)
	res := Resolve(context.Background(), seasons, ResolveOptions{})

	distinct := map[string]int{}
	for _, season := range seasons.Seasons() {
		for _, p := range season.Players() {
			distinct[p.Name]++
		}
	}

	require.Len(t, res.Players, len(distinct))
	for name, count := range distinct {
		require.Len(t, res.YearsOnRoster()[name], count, name)
	}
}
