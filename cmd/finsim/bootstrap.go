package main

import (
	"fmt"

	"github.com/custodia-labs/finsim/internal/adapters/driven/config/file"
	"github.com/custodia-labs/finsim/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/finsim/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/finsim/internal/adapters/driving/cli"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
	"github.com/custodia-labs/finsim/internal/core/services"
	"github.com/custodia-labs/finsim/internal/logger"
)

// bootstrap wires the driven adapters into the core services.
func bootstrap(opts cli.Options) (cli.Services, func() error, error) {
	var (
		store   driven.CollectionStore
		config  driven.ConfigStore
		closeFn func() error
	)

	if opts.Ephemeral {
		logger.Debug("using in-memory collection and config stores")
		store = memory.NewCollectionStore()
		config = memory.NewConfigStore()
	} else {
		db, err := sqlite.NewStore(opts.DataDir)
		if err != nil {
			return cli.Services{}, nil, fmt.Errorf("opening collection store: %w", err)
		}
		logger.Debug("collection store: %s", db.Path())

		cfg, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			_ = db.Close()
			return cli.Services{}, nil, fmt.Errorf("loading config: %w", err)
		}
		logger.Debug("config file: %s", cfg.Path())

		store, config, closeFn = db, cfg, db.Close
	}

	settings := services.NewSettingsService(config)
	retrieval := services.NewRetrievalService(store, settings)

	return cli.Services{
		Collection: services.NewCollectionService(store),
		Retrieval:  retrieval,
		Advisor:    services.NewAdvisorService(retrieval, settings),
		Settings:   settings,
	}, closeFn, nil
}
