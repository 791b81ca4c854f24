package api

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"company-portal/internal/boundary/local"
	"company-portal/internal/config"
	"company-portal/internal/logging"
	"company-portal/internal/repository/sqlite"
	"company-portal/internal/services"
	"company-portal/internal/store"
)

// Options tunes New
type Options struct {
	Logger *zap.Logger

	// BcryptCost overrides the password hashing cost; zero keeps the default
	BcryptCost int
}

// New wires a PortalAPI over the local backend stored in repo
func New(repo sqlite.Repository, cfg *config.Config, opts Options) PortalAPI {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := logging.OrNop(opts.Logger)

	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	backend := local.NewBackend(repo, local.Options{
		UploadDir:  cfg.Boundary.UploadDir,
		BcryptCost: cost,
		Logger:     logger.Named("backend"),
	})

	st := store.New()
	container := services.NewServiceContainer(services.Dependencies{
		Backend:     backend,
		Credentials: local.NewCredentialStore(repo),
		Store:       st,
		Config:      cfg,
		Logger:      logger.Named("services"),
	})

	return NewPortalAPI(st, container)
}
