package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/store"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Load every content category once and report the outcome",
	Long: `Refresh runs the same load the server performs at startup and prints,
per category, whether the stored content was applied, was empty (defaults
kept) or failed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		db := connect()
		defer db.Close()

		container := content.NewContainer(content.Defaults())
		aggregator := content.NewAggregator(store.NewBackend(db), container,
			content.WithFetchTimeout(cfg.FetchTimeout))
		report := aggregator.Refresh(ctx)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tOUTCOME\tROWS\tTIME\tERROR")
		for _, res := range report.Results {
			errText := ""
			if res.Err != nil {
				errText = res.Err.Error()
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				res.Category, res.Outcome, res.Count, res.Duration.Round(time.Millisecond), errText)
		}
		w.Flush()

		if failed := report.Failed(); len(failed) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
