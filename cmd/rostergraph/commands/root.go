package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"rostergraph/internal/pipeline"
	"rostergraph/internal/roster"
	"rostergraph/lib/serviceutil"
	"rostergraph/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	fixturesDir string
	verbose     bool
)

var shutdownTelemetry func(context.Context) error

var rootCmd = &cobra.Command{
	Use:   "rostergraph",
	Short: "rostergraph turns yearly team roster pages into a neo4j creation script.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		tel, err := telemetry.SetupFromEnv(cmd.Context(), "rostergraph")
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		shutdownTelemetry = tel.Shutdown
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shutdownTelemetry == nil {
			return
		}
		err := shutdownTelemetry(context.Background())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", pipeline.ConfigFile, "The config file to read, defaults apply when it does not exist.")
	flags.StringVar(&fixturesDir, "fixtures", "", "Read <year>.html pages from this directory instead of the network.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log at debug level.")
}

func loadConfig() pipeline.Config {
	cfg, err := pipeline.LoadConfig(configPath)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if fixturesDir != "" {
		cfg.FixturesDir = fixturesDir
	}
	return cfg
}

func source(cfg pipeline.Config) roster.Source {
	src, err := cfg.Source()
	if err != nil {
		serviceutil.Fatal("failed to create roster source", err)
	}
	return src
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
