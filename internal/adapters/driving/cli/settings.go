package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change retrieval and news scraping settings.

Settings are stored in config.toml under the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a single setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting by key, for example:

  finsim settings set retrieval.min_score 0.2
  finsim settings set retrieval.stemming true`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingValues renders settings by their config key.
func settingValues(s domain.Settings) map[string]string {
	return map[string]string{
		"retrieval.stop_words":     strconv.FormatBool(s.StopWords),
		"retrieval.stemming":       strconv.FormatBool(s.Stemming),
		"retrieval.top_k":          strconv.Itoa(s.TopK),
		"retrieval.min_score":      strconv.FormatFloat(s.MinScore, 'g', -1, 64),
		"news.requests_per_second": strconv.FormatFloat(s.RequestsPerSecond, 'g', -1, 64),
		"news.articles_per_page":   strconv.Itoa(s.ArticlesPerPage),
		"news.user_agent":          s.UserAgent,
	}
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := newPrinter(cmd)
	out.println(out.title("Current Settings"))
	values := settingValues(settings)
	for _, key := range settingsService.Keys() {
		out.printf("  %-26s %s\n", key, values[key])
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	value, ok := settingValues(settings)[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, args[0])
	}
	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsService
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("%s set to %s\n", args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsService
	}

	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset setting: %w", err)
	}
	cmd.Printf("%s restored to default\n", args[0])
	return nil
}
