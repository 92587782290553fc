package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsim/internal/adapters/driven/source/text"
	"github.com/custodia-labs/finsim/internal/adapters/driven/source/ticker"
	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
	"github.com/custodia-labs/finsim/internal/logger"
)

// defaultDebounce coalesces the burst of events an editor save produces.
const defaultDebounce = 500 * time.Millisecond

var (
	watchKind     string
	watchDebounce time.Duration
)

var collectionWatchCmd = &cobra.Command{
	Use:   "watch [name] [file]",
	Short: "Reload a collection whenever its file changes",
	Long: `Load a ticker CSV or text file into a collection, then reload it every
time the file is written, until interrupted.`,
	Args: cobra.ExactArgs(2),
	RunE: runCollectionWatch,
}

func init() {
	collectionWatchCmd.Flags().StringVarP(&watchKind, "kind", "k", string(domain.CollectionKindTicker), "file kind: ticker or text")
	collectionWatchCmd.Flags().StringVarP(&tickerDelimiter, "delimiter", "d", string(ticker.DefaultDelimiter), "field delimiter for ticker files")
	collectionWatchCmd.Flags().DurationVar(&watchDebounce, "debounce", defaultDebounce, "quiet period before reloading")
	collectionCmd.AddCommand(collectionWatchCmd)
}

func runCollectionWatch(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	source, err := fileSource(domain.CollectionKind(watchKind), path)
	if err != nil {
		return err
	}

	if err := ingest(cmd, name, source); err != nil {
		return err
	}
	cmd.Printf("Watching %s (Ctrl-C to stop)\n", path)

	return watchFile(cmd.Context(), path, watchDebounce, func() error {
		return ingest(cmd, name, source)
	})
}

func fileSource(kind domain.CollectionKind, path string) (driven.DocumentSource, error) {
	switch kind {
	case domain.CollectionKindTicker:
		delim, err := parseDelimiter(tickerDelimiter)
		if err != nil {
			return nil, err
		}
		return ticker.New(path, ticker.WithDelimiter(delim)), nil
	case domain.CollectionKindText:
		return text.New(path), nil
	default:
		return nil, fmt.Errorf("%w: cannot watch %q collections", domain.ErrUnsupportedKind, kind)
	}
}

// watchFile calls reload after path is created or written, once per quiet
// period, until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are still seen. Reload errors are
// logged and watching continues.
func watchFile(ctx context.Context, path string, debounce time.Duration, reload func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := reload(); err != nil {
				logger.Warn("reload %s: %v", path, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", path, err)
		}
	}
}
