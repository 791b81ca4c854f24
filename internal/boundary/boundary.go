// Package boundary declares the external operations the portal consumes:
// authentication, the company profile API, task persistence and the
// persisted credential. Implementations live in subpackages.
package boundary

import (
	"context"
	"errors"

	"company-portal/internal/domain"
)

var (
	// ErrUnauthorized is the 401 equivalent. Receiving it on any call
	// clears the session and erases the persisted credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound reports a missing resource, such as a user without a
	// company profile yet.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrConflict is returned when a unique value, such as an email, is taken.
	ErrConflict = errors.New("already exists")
)

// AuthResult is the outcome of a successful login or registration.
type AuthResult struct {
	User  domain.User
	Token string
}

// RegisterRequest carries the sign-up form.
type RegisterRequest struct {
	FullName string
	Email    string
	MobileNo string
	Gender   string
	Password string
}

// Image is an upload payload. Callers validate type and size beforehand.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AuthAPI authenticates users and manages the account behind a token.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Me(ctx context.Context, token string) (*domain.User, error)
	UpdateMe(ctx context.Context, token string, user domain.User) (*domain.User, error)
	ChangePassword(ctx context.Context, token, current, next string) error
	Logout(ctx context.Context, token string) error
}

// CompanyAPI reads and writes the company profile owned by a token's user.
type CompanyAPI interface {
	FetchCompanyProfile(ctx context.Context, token string) (*domain.CompanyProfile, error)
	SaveCompanyProfile(ctx context.Context, token string, profile domain.CompanyProfile) (*domain.CompanyProfile, error)
	UploadImage(ctx context.Context, token string, kind domain.ImageKind, img Image) (url string, err error)
}

// TaskAPI persists the task list owned by a token's user.
type TaskAPI interface {
	ListTasks(ctx context.Context, token string) ([]domain.Task, error)
	CreateTask(ctx context.Context, token string, task domain.Task) error
	UpdateTask(ctx context.Context, token string, task domain.Task) error
	DeleteTask(ctx context.Context, token string, id string) error
}

// Backend bundles every remote API.
type Backend interface {
	AuthAPI
	CompanyAPI
	TaskAPI
}

// CredentialStore persists the single bearer token between runs.
// LoadToken returns "" when nothing is stored.
type CredentialStore interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	EraseToken(ctx context.Context) error
}
