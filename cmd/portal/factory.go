package main

import (
	"fmt"

	"go.uber.org/zap"

	"company-portal/internal/api"
	"company-portal/internal/config"
	"company-portal/internal/logging"
)

// newPortal opens the database named by cfg and wires the portal API over it
func newPortal(cfg *config.Config) (api.PortalAPI, func() error, error) {
	logger, err := logging.New(logging.Config{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("database opened", zap.String("path", cfg.GetDatabasePath()))

	closer := func() error {
		_ = logger.Sync()
		return repo.Close()
	}

	return api.New(repo, cfg, api.Options{Logger: logger}), closer, nil
}
