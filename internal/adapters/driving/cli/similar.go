package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// explainTerms is how many weighted terms --explain prints per document.
const explainTerms = 5

var (
	similarDoc         int
	similarKey         string
	similarIncludeSelf bool
	similarExplain     bool
)

var similarCmd = &cobra.Command{
	Use:   "similar [collection]",
	Short: "Find the documents most similar to a stored document",
	Long: `Ranks the collection against one of its own documents, chosen by
position (--doc) or by key (--key, e.g. "08/12/2023|aapl" for trading days).
The document itself is left out unless --include-self is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

func init() {
	similarCmd.Flags().IntVar(&similarDoc, "doc", -1, "document id")
	similarCmd.Flags().StringVar(&similarKey, "key", "", "document key")
	similarCmd.Flags().BoolVar(&similarIncludeSelf, "include-self", false, "keep the query document in the results")
	similarCmd.Flags().BoolVar(&similarExplain, "explain", false, "print the top weighted terms of each match")
	similarCmd.MarkFlagsMutuallyExclusive("doc", "key")
	similarCmd.MarkFlagsOneRequired("doc", "key")
	addQueryFlags(similarCmd)
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errRetrievalService
	}

	opts, err := queryOptions(cmd)
	if err != nil {
		return err
	}
	opts.ExcludeSelf = !similarIncludeSelf

	collection := args[0]
	var matches []domain.Match
	if cmd.Flags().Changed("key") {
		matches, err = retrievalService.QueryKey(cmd.Context(), collection, similarKey, opts)
	} else {
		matches, err = retrievalService.QueryDocument(cmd.Context(), collection, similarDoc, opts)
	}
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	var terms map[int][]string
	if similarExplain {
		if terms, err = explainMatches(cmd, collection, matches); err != nil {
			return err
		}
	}

	out := newPrinter(cmd)
	if queryJSON {
		if similarExplain {
			return writeJSON(out.w, withTerms(matches, terms))
		}
		return writeJSON(out.w, matchesOrEmpty(matches))
	}

	var detail func(domain.Match) string
	if similarExplain {
		detail = func(m domain.Match) string {
			if t, ok := terms[m.Document.ID]; ok {
				return out.muted("terms:") + " " + strings.Join(t, ", ")
			}
			return ""
		}
	}
	out.matches(matches, detail)
	return nil
}

// explainedMatch is a match with the top weighted terms of its document.
type explainedMatch struct {
	domain.Match
	Terms []string `json:"terms"`
}

// explainMatches returns the top weighted terms of every matched document,
// keyed by document id. Documents missing from the index are skipped.
func explainMatches(cmd *cobra.Command, collection string, matches []domain.Match) (map[int][]string, error) {
	terms := make(map[int][]string, len(matches))
	for i := range matches {
		id := matches[i].Document.ID
		t, err := retrievalService.Explain(cmd.Context(), collection, id, explainTerms)
		if err != nil {
			if errors.Is(err, domain.ErrMissingDocument) {
				continue
			}
			return nil, fmt.Errorf("explain failed: %w", err)
		}
		terms[id] = t
	}
	return terms, nil
}

func withTerms(matches []domain.Match, terms map[int][]string) []explainedMatch {
	out := make([]explainedMatch, len(matches))
	for i := range matches {
		t := terms[matches[i].Document.ID]
		if t == nil {
			t = []string{}
		}
		out[i] = explainedMatch{Match: matches[i], Terms: t}
	}
	return out
}
