package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/Kapilrajreddy/youtube-api/internal/maintenance"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var dryRun bool

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Remove documents orphaned by interrupted cascades",
	Long: `Delete likes, comments and subscriptions whose target no longer exists, and pull
deleted videos out of playlists and watch histories.

Examples:
  admin repair --dry-run   # count orphans without removing them
  admin repair --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *mongo.Database) error {
			report, err := maintenance.NewRepairer(db, dryRun).Run(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return printReport(cmd, report)
		})
	},
}

func printReport(cmd *cobra.Command, report maintenance.Report) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	verb := "removed"
	if dryRun {
		verb = "found"
	}
	fmt.Fprintf(w, "REFERENCE\tKIND\t%s\n", verb)
	for _, rows := range []struct {
		kind string
		m    map[string]int64
	}{{"document", report.Deleted}, {"entry", report.Pulled}} {
		keys := make([]string, 0, len(rows.m))
		for k := range rows.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%s\t%d\n", k, rows.kind, rows.m[k])
		}
	}
	fmt.Fprintf(w, "total\t\t%d\n", report.Total())
	return w.Flush()
}

func init() {
	repairCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Count orphans without removing them")
	rootCmd.AddCommand(repairCmd)
}
