package main

import (
	"fmt"
	"os"

	"dekamer-scraper/lib/roster"
	"dekamer-scraper/lib/serviceutil"
	"dekamer-scraper/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var rosterPath *string

var rootCmd = &cobra.Command{
	Use:   "query-roster [party]",
	Short: "Lists parties with member counts, or filters roster members by party.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := roster.Read(*rosterPath)
		if err != nil {
			serviceutil.Fatal("failed to read roster, run roster-scrape first", err)
		}

		if len(args) == 0 {
			printPartyCounts(doc)
			return
		}

		members := doc.FilterByParty(args[0])
		if len(members) == 0 {
			fmt.Printf("no members found for party %q\n", args[0])
			if suggestion := doc.ClosestParty(args[0]); suggestion != "" {
				fmt.Printf("did you mean %q?\n", suggestion)
			}
			return
		}
		printMembers(members)
	},
}

func printPartyCounts(doc roster.Document) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Party", "Members"})
	for _, count := range doc.PartyCounts() {
		t.AppendRow(table.Row{count.Party, count.Members})
	}
	t.AppendFooter(table.Row{"Total", doc.TotalMembers})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func printMembers(members []roster.Member) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Party", "Profile"})
	for _, m := range members {
		t.AppendRow(table.Row{m.Name, m.Party, m.ProfileURL})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func init() {
	rosterPath = rootCmd.Flags().String("roster", "parliament_members.json", "The roster JSON file to query.")
}

func main() {
	telemetry.InitSlog()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
