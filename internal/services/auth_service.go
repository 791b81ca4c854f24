package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"company-portal/internal/boundary"
	"company-portal/internal/domain"
	apperrors "company-portal/internal/errors"
	"company-portal/internal/validation"
)

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	*gateway
	validator *validation.AccountValidator
}

// NewAuthService creates a new AuthService instance
func NewAuthService(deps Dependencies) AuthService {
	return newAuthService(newGateway(deps), deps)
}

func newAuthService(g *gateway, deps Dependencies) *authServiceImpl {
	return &authServiceImpl{
		gateway:   g,
		validator: validation.NewAccountValidatorWithConfig(deps.Config),
	}
}

// Restore re-establishes the session from the persisted credential
func (a *authServiceImpl) Restore(ctx context.Context) (*domain.Session, error) {
	if a.credentials == nil {
		return nil, nil
	}

	token, err := a.credentials.LoadToken(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load credential", err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}

	var user *domain.User
	err = a.call(ctx, "restore session", func(ctx context.Context) error {
		var err error
		user, err = a.backend.Me(ctx, token)
		return err
	})
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeUnauthorized) {
			a.logger.Debug("persisted credential no longer valid")
			return nil, nil
		}
		return nil, err
	}

	session := domain.NewSession(*user, token)
	a.store.SetSession(session)
	return session, nil
}

// Login authenticates and persists the resulting token
func (a *authServiceImpl) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if err := a.validator.ValidateCredentials(email, password); err != nil {
		return nil, apperrors.NewValidationError("invalid login", err)
	}

	var result *boundary.AuthResult
	err := a.call(ctx, "login", func(ctx context.Context) error {
		var err error
		result, err = a.backend.Login(ctx, email, password)
		return err
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("logged in", zap.String("user_id", result.User.ID))
	return a.startSession(ctx, result.User, result.Token)
}

// Register creates an account and logs it in
func (a *authServiceImpl) Register(ctx context.Context, req boundary.RegisterRequest) (*domain.Session, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.MobileNo = strings.TrimSpace(req.MobileNo)
	req.Gender = strings.ToLower(strings.TrimSpace(req.Gender))

	candidate := domain.User{
		FullName: req.FullName,
		Email:    req.Email,
		MobileNo: req.MobileNo,
		Gender:   req.Gender,
	}
	if err := a.validator.ValidateRegistration(candidate, req.Password); err != nil {
		return nil, apperrors.NewValidationError("invalid registration", err)
	}

	var result *boundary.AuthResult
	err := a.call(ctx, "register", func(ctx context.Context) error {
		var err error
		result, err = a.backend.Register(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("registered", zap.String("user_id", result.User.ID))
	return a.startSession(ctx, result.User, result.Token)
}

// Logout ends the session locally even when the backend cannot be reached
func (a *authServiceImpl) Logout(ctx context.Context) error {
	session := a.store.Session()

	var err error
	if session.IsAuthenticated() {
		err = a.call(ctx, "logout", func(ctx context.Context) error {
			return a.backend.Logout(ctx, session.Token)
		})
		if err != nil && !apperrors.IsErrorType(err, apperrors.ErrorTypeUnauthorized) {
			a.logger.Warn("remote logout failed", zap.Error(err))
		}
	}

	a.expire(ctx)
	if apperrors.IsErrorType(err, apperrors.ErrorTypeUnauthorized) {
		return nil
	}
	return err
}

// UpdateSettings validates and saves the account fields
func (a *authServiceImpl) UpdateSettings(ctx context.Context, update domain.UserUpdate) (*domain.User, error) {
	if err := a.validator.ValidateUserUpdate(update); err != nil {
		return nil, apperrors.NewValidationError("invalid settings", err)
	}

	token, err := a.token("update settings")
	if err != nil {
		return nil, err
	}

	merged := update.Apply(a.store.Session().User)
	var saved *domain.User
	err = a.call(ctx, "update settings", func(ctx context.Context) error {
		var err error
		saved, err = a.backend.UpdateMe(ctx, token, merged)
		return err
	})
	if err != nil {
		return nil, err
	}

	a.store.UpdateUser(domain.UserUpdate{
		FullName: &saved.FullName,
		Email:    &saved.Email,
		MobileNo: &saved.MobileNo,
	})
	return saved, nil
}

// ChangePassword requires next and confirm to match before calling out
func (a *authServiceImpl) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if err := a.validator.ValidatePasswordChange(current, next, confirm); err != nil {
		return apperrors.NewValidationError("invalid password change", err)
	}

	token, err := a.token("change password")
	if err != nil {
		return err
	}

	return a.call(ctx, "change password", func(ctx context.Context) error {
		return a.backend.ChangePassword(ctx, token, current, next)
	})
}
