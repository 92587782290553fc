// Package cli implements the finsim command line interface on cobra.
//
// Commands talk only to the driving ports. Services are either injected
// with SetServices (tests, embedding) or built lazily by the Bootstrapper
// registered from main before the first command runs.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsim/internal/core/ports/driving"
	"github.com/custodia-labs/finsim/internal/logger"
)

// skipServices marks commands that run without bootstrapping services.
const skipServices = "finsim/skip-services"

var (
	collectionService driving.CollectionService
	retrievalService  driving.RetrievalService
	advisorService    driving.AdvisorService
	settingsService   driving.SettingsService

	version = "dev"

	bootstrap  Bootstrapper
	closeFn    func() error
	globalOpts Options
	verbose    bool
)

// Services bundles the driving ports the commands use.
type Services struct {
	Collection driving.CollectionService
	Retrieval  driving.RetrievalService
	Advisor    driving.AdvisorService
	Settings   driving.SettingsService
}

// Options holds the global flags that influence how services are built.
type Options struct {
	// DataDir holds the SQLite database. Empty means ~/.finsim/data.
	DataDir string

	// ConfigDir holds config.toml. Empty means ~/.finsim.
	ConfigDir string

	// Ephemeral keeps collections and settings in memory only.
	Ephemeral bool
}

// Bootstrapper builds services for the given options. The returned close
// function releases their resources and may be nil.
type Bootstrapper func(opts Options) (Services, func() error, error)

var rootCmd = &cobra.Command{
	Use:   "finsim",
	Short: "Financial document similarity search",
	Long: `finsim indexes small financial document collections (news articles,
trading days, plain text) and finds the most similar documents by TF-IDF
cosine similarity.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	flags.StringVar(&globalOpts.DataDir, "data-dir", "", "directory for the collection database (default ~/.finsim/data)")
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "directory for config.toml (default ~/.finsim)")
	flags.BoolVar(&globalOpts.Ephemeral, "ephemeral", false, "keep collections and settings in memory only")
}

// SetBootstrapper registers the function that builds services on demand.
func SetBootstrapper(b Bootstrapper) {
	bootstrap = b
}

// SetServices injects ready-made services. Injected services are never
// rebuilt by the bootstrapper.
func SetServices(s Services) {
	collectionService = s.Collection
	retrievalService = s.Retrieval
	advisorService = s.Advisor
	settingsService = s.Settings
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// ExecuteContext runs the root command with ctx, which commands observe
// for cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func servicesReady() bool {
	return collectionService != nil && retrievalService != nil &&
		advisorService != nil && settingsService != nil
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if _, skip := cmd.Annotations[skipServices]; skip || cmd.Name() == "help" {
		return nil
	}
	if servicesReady() || bootstrap == nil {
		return nil
	}

	logger.Debug("bootstrapping services (data-dir=%q config-dir=%q ephemeral=%t)",
		globalOpts.DataDir, globalOpts.ConfigDir, globalOpts.Ephemeral)
	services, closer, err := bootstrap(globalOpts)
	if err != nil {
		return err
	}
	SetServices(services)
	closeFn = closer
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeFn == nil {
		return nil
	}
	err := closeFn()
	closeFn = nil
	return err
}

var (
	errCollectionService = errors.New("collection service not configured")
	errRetrievalService  = errors.New("retrieval service not configured")
	errAdvisorService    = errors.New("advisor service not configured")
	errSettingsService   = errors.New("settings service not configured")
)
