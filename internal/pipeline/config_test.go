package pipeline

import (
	"os"
	"path/filepath"
	"rostergraph/internal/cypher"
	"rostergraph/internal/roster"
	"rostergraph/lib/scrapers/sidearm"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFile))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.Len(t, cfg.Years(), 12)
	require.Equal(t, 2009, cfg.Years()[0])
	require.Equal(t, 2020, cfg.Years()[11])
}

func TestLoadConfigWithOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)

	err := os.WriteFile(path, []byte(`{
	// trailing commas and comments are fine
	start_year: 2015,
	end_year: 2016,
	merge_policy: "most_complete",
	alias_threshold: -1,
	regions: {"Ont.": "ON"},
}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "rostergraph.local.json5"), []byte(`{end_year: 2018, output: "local.cypher"}`), 0600)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []int{2015, 2016, 2017, 2018}, cfg.Years())
	require.Equal(t, "local.cypher", cfg.Output)
	require.Equal(t, string(roster.MERGE_MOST_COMPLETE), cfg.MergePolicy)
	require.Equal(t, string(cypher.COLLISION_SUFFIX), cfg.Collisions)
	require.Equal(t, sidearm.DefaultTableSelector, cfg.TableSelector)
	require.Equal(t, -1.0, cfg.AliasThreshold)
	require.Zero(t, cfg.resolveOptions().AliasThreshold)

	regions := cfg.RegionTable()
	state, ok := regions.Lookup("Ont.")
	require.True(t, ok)
	require.Equal(t, "ON", state)
	state, ok = regions.Lookup("Pa.")
	require.True(t, ok)
	require.Equal(t, "PA", state)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"year range":      `{start_year: 2020, end_year: 2019}`,
		"merge policy":    `{merge_policy: "loudest"}`,
		"collision":       `{collision_policy: "ignore"}`,
		"alias threshold": `{alias_threshold: 1.5}`,
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFile)
			require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
			_, err := LoadConfig(path)
			require.Error(t, err)
		})
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(`{start_year: `), 0600))
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "parse")
}

func TestSourceSelection(t *testing.T) {
	cfg := DefaultConfig()
	src, err := cfg.Source()
	require.NoError(t, err)
	client, ok := src.(*sidearm.Client)
	require.True(t, ok)
	require.Equal(t, "https://gopsusports.com/sports/football/roster/2014", client.RosterUrl(2014))

	cfg.DumpDir = filepath.Join(t.TempDir(), "dumps")
	_, err = cfg.Source()
	require.NoError(t, err)
	_, err = os.Stat(cfg.DumpDir)
	require.NoError(t, err)
}
