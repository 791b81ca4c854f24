// Package local implements the boundary APIs on top of the SQLite
// repository so the portal works without a remote server.
package local

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"company-portal/internal/boundary"
	"company-portal/internal/domain"
	apperrors "company-portal/internal/errors"
	"company-portal/internal/logging"
	"company-portal/internal/repository/sqlite"
)

// Options configures a Backend.
type Options struct {
	UploadDir  string
	BcryptCost int
	Logger     *zap.Logger
}

// Backend serves AuthAPI, CompanyAPI and TaskAPI from a local database.
type Backend struct {
	repo       sqlite.Repository
	mapper     *domain.Mapper
	uploadDir  string
	bcryptCost int
	logger     *zap.Logger
	newToken   func() string
}

var _ boundary.Backend = (*Backend)(nil)

// NewBackend creates a Backend over repo.
func NewBackend(repo sqlite.Repository, opts Options) *Backend {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Backend{
		repo:       repo,
		mapper:     domain.NewMapper(),
		uploadDir:  opts.UploadDir,
		bcryptCost: cost,
		logger:     logging.OrNop(opts.Logger),
		newToken:   uuid.NewString,
	}
}

// translate maps repository errors onto boundary sentinels.
func translate(err error) error {
	if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
		return fmt.Errorf("%w: %v", boundary.ErrNotFound, err)
	}
	return err
}

// authenticate resolves a bearer token to its user.
func (b *Backend) authenticate(ctx context.Context, token string) (*sqlite.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, boundary.ErrUnauthorized
	}
	user, err := b.repo.GetUserByToken(ctx, token)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return nil, boundary.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (b *Backend) issueToken(ctx context.Context, user *sqlite.User) (*boundary.AuthResult, error) {
	token := b.newToken()
	if err := b.repo.CreateAuthToken(ctx, token, user.ID); err != nil {
		return nil, err
	}
	return &boundary.AuthResult{User: b.mapper.User.FromDatabase(*user), Token: token}, nil
}

// Login checks the password against the stored bcrypt hash and issues a token.
func (b *Backend) Login(ctx context.Context, email, password string) (*boundary.AuthResult, error) {
	user, err := b.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return nil, boundary.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		b.logger.Debug("password mismatch", zap.String("user_id", user.ID))
		return nil, boundary.ErrInvalidCredentials
	}

	return b.issueToken(ctx, user)
}

// Register creates the account and logs it in.
func (b *Backend) Register(ctx context.Context, req boundary.RegisterRequest) (*boundary.AuthResult, error) {
	email := strings.TrimSpace(req.Email)

	if _, err := b.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s: %w", email, boundary.ErrConflict)
	} else if !apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), b.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &sqlite.User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		MobileNo:     strings.TrimSpace(req.MobileNo),
		Gender:       req.Gender,
		PasswordHash: string(hash),
	}
	if err := b.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	b.logger.Info("user registered", zap.String("user_id", user.ID))

	return b.issueToken(ctx, user)
}

// Me returns the user behind token.
func (b *Backend) Me(ctx context.Context, token string) (*domain.User, error) {
	row, err := b.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	user := b.mapper.User.FromDatabase(*row)
	return &user, nil
}

// UpdateMe stores the editable account fields.
func (b *Backend) UpdateMe(ctx context.Context, token string, user domain.User) (*domain.User, error) {
	row, err := b.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(row.Email, user.Email) {
		if other, err := b.repo.GetUserByEmail(ctx, user.Email); err == nil && other.ID != row.ID {
			return nil, fmt.Errorf("email %s: %w", user.Email, boundary.ErrConflict)
		}
	}

	b.mapper.User.ApplyToDatabase(user, row)
	if err := b.repo.UpdateUser(ctx, row); err != nil {
		return nil, translate(err)
	}

	updated := b.mapper.User.FromDatabase(*row)
	return &updated, nil
}

// ChangePassword replaces the hash after verifying the current password.
func (b *Backend) ChangePassword(ctx context.Context, token, current, next string) error {
	row, err := b.authenticate(ctx, token)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(current)); err != nil {
		return boundary.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), b.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	row.PasswordHash = string(hash)
	return translate(b.repo.UpdateUser(ctx, row))
}

// Logout revokes token. Unknown tokens are ignored.
func (b *Backend) Logout(ctx context.Context, token string) error {
	return b.repo.DeleteAuthToken(ctx, token)
}

// FetchCompanyProfile returns boundary.ErrNotFound until a profile is saved.
func (b *Backend) FetchCompanyProfile(ctx context.Context, token string) (*domain.CompanyProfile, error) {
	user, err := b.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	row, err := b.repo.GetCompanyProfile(ctx, user.ID)
	if err != nil {
		return nil, translate(err)
	}

	profile, err := b.mapper.CompanyProfile.FromDatabase(*row)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveCompanyProfile replaces the stored profile and returns what was stored.
func (b *Backend) SaveCompanyProfile(ctx context.Context, token string, profile domain.CompanyProfile) (*domain.CompanyProfile, error) {
	user, err := b.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	row, err := b.mapper.CompanyProfile.ToDatabase(profile, user.ID)
	if err != nil {
		return nil, err
	}
	if err := b.repo.SaveCompanyProfile(ctx, &row); err != nil {
		return nil, err
	}

	saved, err := b.mapper.CompanyProfile.FromDatabase(row)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// UploadImage writes the image under the upload directory, points the
// profile's logo or banner at it and returns its file URL.
func (b *Backend) UploadImage(ctx context.Context, token string, kind domain.ImageKind, img boundary.Image) (string, error) {
	user, err := b.authenticate(ctx, token)
	if err != nil {
		return "", err
	}
	if b.uploadDir == "" {
		return "", errors.New("uploads are not configured")
	}

	dir := filepath.Join(b.uploadDir, user.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	path := filepath.Join(dir, string(kind)+"-"+uuid.NewString()+imageExtension(img))
	if err := os.WriteFile(path, img.Data, 0644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	location := (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()

	row, err := b.repo.GetCompanyProfile(ctx, user.ID)
	if err != nil {
		if !apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return "", err
		}
		row = &sqlite.CompanyProfile{OwnerID: user.ID}
	}
	switch kind {
	case domain.ImageLogo:
		row.LogoURL = location
	case domain.ImageBanner:
		row.BannerURL = location
	}
	if err := b.repo.SaveCompanyProfile(ctx, row); err != nil {
		return "", err
	}

	b.logger.Info("image uploaded",
		zap.String("user_id", user.ID),
		zap.String("kind", string(kind)),
		zap.Int("bytes", len(img.Data)),
	)
	return location, nil
}

func imageExtension(img boundary.Image) string {
	if ext := strings.ToLower(filepath.Ext(img.Filename)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(img.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// ListTasks returns the caller's tasks in insertion order.
func (b *Backend) ListTasks(ctx context.Context, token string) ([]domain.Task, error) {
	user, err := b.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	rows, err := b.repo.ListTasks(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return b.mapper.Task.FromDatabaseSlice(rows), nil
}

// CreateTask stores a new task for the caller.
func (b *Backend) CreateTask(ctx context.Context, token string, task domain.Task) error {
	user, err := b.authenticate(ctx, token)
	if err != nil {
		return err
	}
	row := b.mapper.Task.ToDatabase(task, user.ID)
	return b.repo.CreateTask(ctx, &row)
}

// UpdateTask overwrites a stored task.
func (b *Backend) UpdateTask(ctx context.Context, token string, task domain.Task) error {
	user, err := b.authenticate(ctx, token)
	if err != nil {
		return err
	}
	row := b.mapper.Task.ToDatabase(task, user.ID)
	return translate(b.repo.UpdateTask(ctx, &row))
}

// DeleteTask removes a stored task.
func (b *Backend) DeleteTask(ctx context.Context, token string, id string) error {
	user, err := b.authenticate(ctx, token)
	if err != nil {
		return err
	}
	return translate(b.repo.DeleteTask(ctx, user.ID, id))
}
