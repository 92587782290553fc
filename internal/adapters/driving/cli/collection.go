package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsim/internal/adapters/driven/source/news"
	"github.com/custodia-labs/finsim/internal/adapters/driven/source/text"
	"github.com/custodia-labs/finsim/internal/adapters/driven/source/ticker"
	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
)

var (
	tickerDelimiter string
	newsURLs        []string
	newsCount       int
	collectionJSON  bool
	showLimit       int
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"col"},
	Short:   "Manage document collections",
	Long: `Load, list, inspect and delete named document collections.

Every load replaces the collection wholesale; its similarity index is
rebuilt on the next query.`,
}

var collectionLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load documents into a collection",
}

var loadTickerCmd = &cobra.Command{
	Use:   "ticker [name] [csv-file]",
	Short: "Load trading days from a CSV file",
	Long: `Load one document per trading day from a delimited file.

The header must name at least the columns date, open, high, low, close and
ticker, in any order. Each day is indexed by its prices and ticker, and can
be looked up by "date|ticker".`,
	Args: cobra.ExactArgs(2),
	RunE: runLoadTicker,
}

var loadNewsCmd = &cobra.Command{
	Use:   "news [name]",
	Short: "Scrape financial news articles",
	Long: `Scrape article listings and index one document per article.

Without --url the default Yahoo Finance listing pages are used. Requests
are rate limited by the news.requests_per_second setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoadNews,
}

var loadTextCmd = &cobra.Command{
	Use:   "text [name] [file]",
	Short: "Load paragraphs from a plain text file",
	Args:  cobra.ExactArgs(2),
	RunE:  runLoadText,
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all collections",
	Args:  cobra.NoArgs,
	RunE:  runCollectionList,
}

var collectionShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a collection and its documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionShow,
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionDelete,
}

func init() {
	loadTickerCmd.Flags().StringVarP(&tickerDelimiter, "delimiter", "d", string(ticker.DefaultDelimiter), "field delimiter")
	loadNewsCmd.Flags().StringSliceVar(&newsURLs, "url", nil, "listing page URL (repeatable)")
	loadNewsCmd.Flags().IntVarP(&newsCount, "count", "c", 0, "articles per listing page (default from settings)")
	collectionListCmd.Flags().BoolVar(&collectionJSON, "json", false, "output as JSON")
	collectionShowCmd.Flags().BoolVar(&collectionJSON, "json", false, "output as JSON")
	collectionShowCmd.Flags().IntVarP(&showLimit, "limit", "n", 10, "maximum documents to print (0 = all)")

	collectionLoadCmd.AddCommand(loadTickerCmd)
	collectionLoadCmd.AddCommand(loadNewsCmd)
	collectionLoadCmd.AddCommand(loadTextCmd)
	collectionCmd.AddCommand(collectionLoadCmd)
	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionShowCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	rootCmd.AddCommand(collectionCmd)
}

func runLoadTicker(cmd *cobra.Command, args []string) error {
	delim, err := parseDelimiter(tickerDelimiter)
	if err != nil {
		return err
	}
	return ingest(cmd, args[0], ticker.New(args[1], ticker.WithDelimiter(delim)))
}

func runLoadNews(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsService
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cfg := news.Config{
		ListingURLs:       newsURLs,
		ArticlesPerPage:   settings.ArticlesPerPage,
		RequestsPerSecond: settings.RequestsPerSecond,
		UserAgent:         settings.UserAgent,
	}
	if newsCount > 0 {
		cfg.ArticlesPerPage = newsCount
	}
	return ingest(cmd, args[0], news.New(cfg))
}

func runLoadText(cmd *cobra.Command, args []string) error {
	return ingest(cmd, args[0], text.New(args[1]))
}

func ingest(cmd *cobra.Command, name string, source driven.DocumentSource) error {
	if collectionService == nil {
		return errCollectionService
	}

	collection, err := collectionService.Ingest(cmd.Context(), name, source)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	cmd.Printf("Loaded %d documents into %q (%s)\n", len(collection.Documents), collection.Name, collection.Kind)
	return nil
}

func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single character, got %q", domain.ErrInvalidInput, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func runCollectionList(cmd *cobra.Command, _ []string) error {
	if collectionService == nil {
		return errCollectionService
	}

	collections, err := collectionService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	out := newPrinter(cmd)
	if collectionJSON {
		if collections == nil {
			collections = []domain.Collection{}
		}
		return writeJSON(out.w, collections)
	}

	if len(collections) == 0 {
		out.println("No collections loaded.")
		return nil
	}
	for i := range collections {
		c := collections[i]
		out.printf("%s  %s  %s\n", out.title(c.Name), c.Kind, out.muted(c.UpdatedAt.Format("2006-01-02 15:04")))
		if c.Origin != "" {
			out.printf("    %s\n", out.muted(c.Origin))
		}
	}
	return nil
}

func runCollectionShow(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errCollectionService
	}

	collection, err := collectionService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get collection: %w", err)
	}

	out := newPrinter(cmd)
	if collectionJSON {
		return writeJSON(out.w, collection)
	}

	out.println(out.title(collection.Name))
	out.printf("  ID:        %s\n", collection.ID)
	out.printf("  Kind:      %s\n", collection.Kind)
	out.printf("  Origin:    %s\n", collection.Origin)
	out.printf("  Documents: %d\n", len(collection.Documents))
	out.printf("  Updated:   %s\n", collection.UpdatedAt.Format("2006-01-02 15:04:05"))

	docs := collection.Documents
	if showLimit > 0 && len(docs) > showLimit {
		docs = docs[:showLimit]
	}
	if len(docs) > 0 {
		out.println()
	}
	for i := range docs {
		out.printf("  %4d  %s\n", docs[i].ID, docs[i].DisplayName())
	}
	if len(docs) < len(collection.Documents) {
		out.println(out.muted(fmt.Sprintf("  ... %d more", len(collection.Documents)-len(docs))))
	}
	return nil
}

func runCollectionDelete(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errCollectionService
	}

	if err := collectionService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	cmd.Printf("Deleted collection %q\n", args[0])
	return nil
}
