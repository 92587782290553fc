package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// defaultDays matches the number of days the advisor returns by default.
const defaultDays = 3

var (
	daysCount int
	daysJSON  bool
)

var daysCmd = &cobra.Command{
	Use:   "days [collection] [MM/DD/YYYY] [ticker]",
	Short: "Find the trading days most similar to a given day",
	Long: `Looks up the given day of a ticker collection and lists the other days
whose prices and ticker are most similar to it.`,
	Args: cobra.ExactArgs(3),
	RunE: runDays,
}

func init() {
	daysCmd.Flags().IntVarP(&daysCount, "count", "n", defaultDays, "number of similar days")
	daysCmd.Flags().BoolVar(&daysJSON, "json", false, "output matches as JSON")
	rootCmd.AddCommand(daysCmd)
}

func runDays(cmd *cobra.Command, args []string) error {
	if advisorService == nil {
		return errAdvisorService
	}

	matches, err := advisorService.SimilarDays(cmd.Context(), args[0], args[1], args[2], daysCount)
	if err != nil {
		return fmt.Errorf("similar days failed: %w", err)
	}

	out := newPrinter(cmd)
	if daysJSON {
		return writeJSON(out.w, matchesOrEmpty(matches))
	}

	if len(matches) == 0 {
		out.println(out.warn("No similar trading days."))
		return nil
	}
	out.printf("%-12s %-8s %10s %10s %10s %10s %8s\n", "DATE", "TICKER", "OPEN", "HIGH", "LOW", "CLOSE", "SCORE")
	for i := range matches {
		meta := matches[i].Document.Metadata
		out.printf("%-12s %-8s %10s %10s %10s %10s %8.4f\n",
			meta["date"], meta["ticker"], meta["open"], meta["high"], meta["low"], meta["close"], matches[i].Score)
	}
	return nil
}
