package services

import (
	"context"
	"time"

	"company-portal/internal/boundary"
	"company-portal/internal/domain"
	"company-portal/internal/metrics"
	"company-portal/internal/ordering"
)

// Dashboard is everything the overview page shows
type Dashboard struct {
	User    *domain.User           `json:"user,omitempty"`
	Profile *domain.CompanyProfile `json:"profile,omitempty"`
	Stats   metrics.DerivedStats   `json:"stats"`
	Missing []string               `json:"missing_fields"`
	Tasks   ordering.TaskView      `json:"tasks"`
	Today   time.Time              `json:"today"`
}

// AuthService handles the session lifecycle and account settings
type AuthService interface {
	// Restore reads the persisted token and verifies it. A rejected token is
	// erased and the portal stays unauthenticated.
	Restore(ctx context.Context) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, req boundary.RegisterRequest) (*domain.Session, error)
	Logout(ctx context.Context) error

	// Settings page
	UpdateSettings(ctx context.Context, update domain.UserUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, current, next, confirm string) error
}

// ProfileService keeps the company profile in the store in step with the backend
type ProfileService interface {
	Fetch(ctx context.Context) (*domain.CompanyProfile, error)
	Save(ctx context.Context, profile domain.CompanyProfile) (*domain.CompanyProfile, error)
	Merge(ctx context.Context, update domain.CompanyProfileUpdate) (*domain.CompanyProfile, error)

	// Social links are edited in the store; Sync writes the stored profile
	// back without the form checks Save applies
	AddSocialLink(link domain.SocialLink) error
	RemoveSocialLink(index int) error
	Sync(ctx context.Context) (*domain.CompanyProfile, error)

	UploadImage(ctx context.Context, kind domain.ImageKind, img boundary.Image) (string, error)
}

// TaskService manages the task list. Mutations apply to the store first and
// are then persisted; a failed write is reported but not rolled back.
type TaskService interface {
	Load(ctx context.Context) ([]domain.Task, error)
	Add(ctx context.Context, task domain.Task) (*domain.Task, error)
	Toggle(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// ReportingService derives the dashboard from the store
type ReportingService interface {
	Dashboard(now time.Time) *Dashboard
	Stats(now time.Time) metrics.DerivedStats
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	AuthService      AuthService
	ProfileService   ProfileService
	TaskService      TaskService
	ReportingService ReportingService
}
