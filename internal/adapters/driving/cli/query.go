package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

var (
	queryTopK     int
	queryMinScore float64
	queryJSON     bool
)

var queryCmd = &cobra.Command{
	Use:   "query [collection] [text...]",
	Short: "Find the documents most similar to free text",
	Long: `Ranks every document in the collection by TF-IDF cosine similarity to
the given text. Words that never occur in the collection are ignored.

Defaults for --top and --min-score come from the retrieval settings.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runQuery,
}

func init() {
	addQueryFlags(queryCmd)
	rootCmd.AddCommand(queryCmd)
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&queryTopK, "top", "n", domain.DefaultTopK, "maximum number of matches")
	cmd.Flags().Float64Var(&queryMinScore, "min-score", domain.DefaultMinScore, "drop matches scoring below this (0 keeps all)")
	cmd.Flags().BoolVar(&queryJSON, "json", false, "output matches as JSON")
}

// queryOptions starts from the configured settings and applies any
// explicitly set flags on top.
func queryOptions(cmd *cobra.Command) (domain.QueryOptions, error) {
	opts := domain.DefaultQueryOptions()
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return opts, fmt.Errorf("failed to get settings: %w", err)
		}
		opts = settings.QueryOptions()
	}
	if cmd.Flags().Changed("top") {
		opts.TopK = queryTopK
	}
	if cmd.Flags().Changed("min-score") {
		opts.MinScore = queryMinScore
	}
	return opts, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errRetrievalService
	}

	opts, err := queryOptions(cmd)
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	matches, err := retrievalService.Query(cmd.Context(), args[0], text, opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	out := newPrinter(cmd)
	if queryJSON {
		return writeJSON(out.w, matchesOrEmpty(matches))
	}
	out.matches(matches, nil)
	return nil
}
