package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"dekamer-scraper/lib/roster"
	"dekamer-scraper/lib/scrapers/dekamer"
	"dekamer-scraper/lib/serviceutil"
	"dekamer-scraper/lib/telemetry"

	"github.com/spf13/cobra"
)

var outPath *string

var rootCmd = &cobra.Command{
	Use:   "roster-scrape [--out <path/to/output.json>]",
	Short: "Scrapes the De Kamer member listing and writes the roster as JSON.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := dekamer.NewClient()

		members, err := client.FetchMembers(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch member listing", err)
		}
		if len(members) == 0 {
			slog.Warn("listing page yielded no member cards")
		}

		doc := roster.NewDocument(members, time.Now())
		if err := roster.Write(*outPath, doc); err != nil {
			serviceutil.Fatal("failed to write roster", err)
		}

		slog.Info("wrote roster", "members", doc.TotalMembers, "path", *outPath)
	},
}

func init() {
	outPath = rootCmd.Flags().String("out", "parliament_members.json", "The file to write the roster to.")
}

func main() {
	telemetry.InitSlog()
	ctx := serviceutil.SignalContext()
	shutdown := telemetry.SetupFromEnv(ctx, "roster-scrape")
	defer shutdown(ctx)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
