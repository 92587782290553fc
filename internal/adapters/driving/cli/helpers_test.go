package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsim/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/finsim/internal/core/services"
)

const testTickerCSV = `date;open;high;low;close;ticker
08/11/2023;150;155;149;154;AAPL
08/12/2023;150;155;149;154;AAPL
08/13/2023;320;330;318;325;MSFT
`

const testText = `the cat sat on the mat

the dog sat on the log

stock markets rallied today
`

// setupTestServices wires real services over in-memory stores and returns
// a cleanup function that clears them and resets every flag.
func setupTestServices() func() {
	store := memory.NewCollectionStore()
	settings := services.NewSettingsService(memory.NewConfigStore())
	retrieval := services.NewRetrievalService(store, settings)

	SetServices(Services{
		Collection: services.NewCollectionService(store),
		Retrieval:  retrieval,
		Advisor:    services.NewAdvisorService(retrieval, settings),
		Settings:   settings,
	})

	return func() {
		SetServices(Services{})
		resetFlags(rootCmd)
	}
}

// execute runs the root command with args and returns everything written
// to stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// loadTestCollections loads the ticker and text fixtures as "prices" and "notes".
func loadTestCollections(t *testing.T) {
	t.Helper()
	_, err := execute(t, "collection", "load", "ticker", "prices", writeTestFile(t, "prices.csv", testTickerCSV))
	require.NoError(t, err)
	_, err = execute(t, "collection", "load", "text", "notes", writeTestFile(t, "notes.txt", testText))
	require.NoError(t, err)
}
