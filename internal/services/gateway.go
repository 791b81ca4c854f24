package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"company-portal/internal/boundary"
	"company-portal/internal/config"
	"company-portal/internal/domain"
	apperrors "company-portal/internal/errors"
	"company-portal/internal/logging"
	"company-portal/internal/store"
)

// Dependencies are shared by every service
type Dependencies struct {
	Backend     boundary.Backend
	Credentials boundary.CredentialStore
	Store       *store.Store
	Config      *config.Config
	Logger      *zap.Logger
}

// gateway performs boundary calls on behalf of the services
type gateway struct {
	backend     boundary.Backend
	credentials boundary.CredentialStore
	store       *store.Store
	timeout     time.Duration
	logger      *zap.Logger
}

func newGateway(deps Dependencies) *gateway {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	st := deps.Store
	if st == nil {
		st = store.New()
	}
	return &gateway{
		backend:     deps.Backend,
		credentials: deps.Credentials,
		store:       st,
		timeout:     cfg.GetBoundaryTimeout(),
		logger:      logging.OrNop(deps.Logger),
	}
}

// token returns the bearer token of the current session
func (g *gateway) token(operation string) (string, error) {
	session := g.store.Session()
	if !session.IsAuthenticated() {
		return "", apperrors.NewUnauthorizedError(operation, nil)
	}
	return session.Token, nil
}

// call runs fn under the boundary timeout and classifies its failure.
// ErrUnauthorized ends the session.
func (g *gateway) call(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		g.logger.Warn("boundary call timed out",
			zap.String("operation", operation),
			zap.Duration("timeout", g.timeout),
		)
		return apperrors.NewTimeoutError(operation, g.timeout)
	case errors.Is(err, boundary.ErrUnauthorized):
		g.logger.Info("credential rejected", zap.String("operation", operation))
		g.expire(ctx)
		return apperrors.NewUnauthorizedError(operation, err)
	default:
		return apperrors.NewBoundaryError(operation, err)
	}
}

// expire clears the session and erases the persisted credential
func (g *gateway) expire(ctx context.Context) {
	g.store.Logout()
	if g.credentials == nil {
		return
	}
	if err := g.credentials.EraseToken(ctx); err != nil {
		g.logger.Error("failed to erase credential", zap.Error(err))
	}
}

// startSession stores a fresh session and persists its token
func (g *gateway) startSession(ctx context.Context, user domain.User, token string) (*domain.Session, error) {
	session := domain.NewSession(user, token)
	g.store.SetSession(session)

	if g.credentials != nil {
		if err := g.credentials.SaveToken(ctx, token); err != nil {
			g.logger.Error("failed to persist credential", zap.Error(err))
			return session, apperrors.NewDatabaseError("save credential", err)
		}
	}
	return session, nil
}
