package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// noContextMessage is printed when no article is similar enough.
const noContextMessage = "I am sorry, I could not find anything relevant to your question."

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [collection] [question...]",
	Short: "Pick the news article that best answers a question",
	Long: `Selects the single article most similar to the question, as the
context a financial chatbot would answer from. Nothing is returned when no
article reaches the retrieval.min_score setting.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the match as JSON")
	rootCmd.AddCommand(askCmd)
}

// askResult is the JSON shape of the ask command.
type askResult struct {
	Found   bool    `json:"found"`
	Title   string  `json:"title,omitempty"`
	URI     string  `json:"uri,omitempty"`
	Score   float64 `json:"score,omitempty"`
	Context string  `json:"context,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	if advisorService == nil {
		return errAdvisorService
	}

	question := strings.Join(args[1:], " ")
	match, found, err := advisorService.BestContext(cmd.Context(), args[0], question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	out := newPrinter(cmd)
	if askJSON {
		result := askResult{Found: found}
		if found {
			result.Title = match.Document.Title
			result.URI = match.Document.URI
			result.Score = match.Score
			result.Context = match.Document.Text
		}
		return writeJSON(out.w, result)
	}

	if !found {
		out.println(out.warn(noContextMessage))
		return nil
	}

	out.printf("%s (score %.4f)\n", out.title(match.Document.DisplayName()), match.Score)
	if match.Document.URI != "" {
		out.println(out.muted(match.Document.URI))
	}
	out.println()
	out.println(match.Document.Text)
	return nil
}
