package pipeline

import (
	"fmt"
	"os"
	"rostergraph/internal/cypher"
	"rostergraph/internal/roster"
	"rostergraph/lib/configutil"
	"rostergraph/lib/restyutil"
	"rostergraph/lib/scrapers/sidearm"
	"time"
)

// ConfigFile is read from the working directory, a rostergraph.local.json5 next
// to it overrides single fields.
const ConfigFile = "rostergraph.json5"

type Config struct {
	BaseUrl        string            `json:"base_url"`
	StartYear      int               `json:"start_year"`
	EndYear        int               `json:"end_year"`
	TableSelector  string            `json:"table_selector"`
	Output         string            `json:"output"`
	FixturesDir    string            `json:"fixtures_dir"`
	Regions        map[string]string `json:"regions"`
	MergePolicy    string            `json:"merge_policy"`
	Collisions     string            `json:"collision_policy"`
	// AliasThreshold below zero turns alias detection off, zero means the default.
	AliasThreshold float64           `json:"alias_threshold"`
	UserAgent      string            `json:"user_agent"`
	TimeoutSeconds int               `json:"timeout_seconds"`
	// DumpDir receives a copy of every HTTP exchange when set.
	DumpDir        string            `json:"dump_dir"`
}

func DefaultConfig() Config {
	return Config{
		BaseUrl:        "https://gopsusports.com/sports/football/roster",
		StartYear:      2009,
		EndYear:        2020,
		TableSelector:  sidearm.DefaultTableSelector,
		Output:         "neo4j_script.txt",
		MergePolicy:    string(roster.MERGE_FIRST_SEEN),
		Collisions:     string(cypher.COLLISION_SUFFIX),
		AliasThreshold: 0.97,
		TimeoutSeconds: 30,
	}
}

// LoadConfig reads the config file when it exists and fills unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	cfg, err = configutil.WithDefaults(cfg, DefaultConfig())
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.StartYear <= 0 || c.EndYear < c.StartYear {
		return fmt.Errorf("invalid year range %d-%d", c.StartYear, c.EndYear)
	}
	if c.AliasThreshold > 1 {
		return fmt.Errorf("alias threshold %v must not exceed 1", c.AliasThreshold)
	}
	if _, err := roster.ParseMergePolicy(c.MergePolicy); err != nil {
		return err
	}
	if _, err := cypher.ParseCollisionPolicy(c.Collisions); err != nil {
		return err
	}
	return nil
}

// Years lists the requested roster years in order.
func (c Config) Years() []int {
	var years []int
	for y := c.StartYear; y <= c.EndYear; y++ {
		years = append(years, y)
	}
	return years
}

func (c Config) RegionTable() roster.RegionTable {
	return roster.DefaultRegions.With(c.Regions)
}

// Source builds the page source, saved pages win over the network.
func (c Config) Source() (roster.Source, error) {
	if c.FixturesDir != "" {
		return sidearm.Fixtures{Dir: c.FixturesDir, TableSelector: c.TableSelector}, nil
	}

	opts := sidearm.ClientOptions{
		BaseUrl:       c.BaseUrl,
		TableSelector: c.TableSelector,
		UserAgent:     c.UserAgent,
		Timeout:       time.Duration(c.TimeoutSeconds) * time.Second,
	}
	if c.DumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(c.DumpDir)
		if err != nil {
			return nil, err
		}
		opts.DumpOutput = out
	}
	client, err := sidearm.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return client, nil
}
