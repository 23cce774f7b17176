package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"dekamer-scraper/lib/configutil"
	"dekamer-scraper/lib/scrapers/plenary"
	"dekamer-scraper/lib/serviceutil"
	"dekamer-scraper/lib/telemetry"

	"github.com/spf13/cobra"
)

var configPath *string

var rootCmd = &cobra.Command{
	Use:   "vote-parse <html_file> [output_json]",
	Short: "Extracts nominative votes from a saved plenary session transcript into JSON.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := plenary.DefaultConfig()
		if *configPath != "" {
			fileCfg, err := configutil.ReadConfig[plenary.Config](*configPath)
			if err != nil {
				serviceutil.Fatal("failed to read config", err)
			}
			cfg = fileCfg.WithDefaults()
		}

		report, err := plenary.New(cfg).ParseFile(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to parse transcript", err)
		}

		out := "plenary_votes.json"
		if len(args) > 1 {
			out = args[1]
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			serviceutil.Fatal("failed to serialize report", err)
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			serviceutil.Fatal("failed to write report", err)
		}

		slog.Info(
			"wrote voting report",
			"items", report.TotalItems,
			"with_votes", report.ItemsWithVotes,
			"path", out,
		)
	},
}

func init() {
	configPath = rootCmd.Flags().String("config", "", "Optional json5 file overriding vote labels and the name separator.")
}

func main() {
	telemetry.InitSlog()
	ctx := context.Background()
	shutdown := telemetry.SetupFromEnv(ctx, "vote-parse")
	defer shutdown(ctx)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
