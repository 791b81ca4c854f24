package api

import (
	"context"
	"time"

	"company-portal/internal/boundary"
	"company-portal/internal/domain"
	apperrors "company-portal/internal/errors"
	"company-portal/internal/services"
	"company-portal/internal/store"
)

var timeNow = time.Now

// PortalAPI is the single entry point used by the command line. Each call
// restores the persisted session when the store does not hold one yet.
type PortalAPI interface {
	// ========== Session ==========

	// CurrentSession returns the restored session, or nil when logged out
	CurrentSession(ctx context.Context) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, req boundary.RegisterRequest) (*domain.Session, error)
	Logout(ctx context.Context) error
	UpdateSettings(ctx context.Context, update domain.UserUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, current, next, confirm string) error

	// ========== Company profile ==========

	// GetCompanyProfile returns nil when no profile has been saved yet
	GetCompanyProfile(ctx context.Context) (*domain.CompanyProfile, error)
	SaveCompanyProfile(ctx context.Context, profile domain.CompanyProfile) (*domain.CompanyProfile, error)
	UpdateCompanyProfile(ctx context.Context, update domain.CompanyProfileUpdate) (*domain.CompanyProfile, error)
	AddSocialLink(ctx context.Context, link domain.SocialLink) (*domain.CompanyProfile, error)
	RemoveSocialLink(ctx context.Context, index int) (*domain.CompanyProfile, error)
	UploadImage(ctx context.Context, kind domain.ImageKind, img boundary.Image) (string, error)

	// ========== Tasks ==========

	ListTasks(ctx context.Context) ([]domain.Task, error)
	AddTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// ========== Dashboard ==========

	// GetDashboard refreshes profile and tasks and derives the overview
	GetDashboard(ctx context.Context) (*services.Dashboard, error)

	// Subscribe observes every applied state change
	Subscribe(fn store.Listener) (unsubscribe func())
}

// portalAPIImpl implements the PortalAPI interface
type portalAPIImpl struct {
	store    *store.Store
	services *services.ServiceContainer
}

// NewPortalAPI creates a PortalAPI over a service container sharing st
func NewPortalAPI(st *store.Store, container *services.ServiceContainer) PortalAPI {
	return &portalAPIImpl{store: st, services: container}
}

// requireSession restores the session if needed and fails when there is none
func (p *portalAPIImpl) requireSession(ctx context.Context, operation string) error {
	session, err := p.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if !session.IsAuthenticated() {
		return apperrors.NewUnauthorizedError(operation, nil)
	}
	return nil
}

// ensureProfile loads the profile into the store once per process
func (p *portalAPIImpl) ensureProfile(ctx context.Context, operation string) error {
	if err := p.requireSession(ctx, operation); err != nil {
		return err
	}
	if p.store.CompanyProfile() != nil {
		return nil
	}
	_, err := p.services.ProfileService.Fetch(ctx)
	return err
}

// ensureTasks loads the task list into the store
func (p *portalAPIImpl) ensureTasks(ctx context.Context, operation string) error {
	if err := p.requireSession(ctx, operation); err != nil {
		return err
	}
	_, err := p.services.TaskService.Load(ctx)
	return err
}

// ========== Session ==========

func (p *portalAPIImpl) CurrentSession(ctx context.Context) (*domain.Session, error) {
	if session := p.store.Session(); session.IsAuthenticated() {
		return session, nil
	}
	return p.services.AuthService.Restore(ctx)
}

func (p *portalAPIImpl) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return p.services.AuthService.Login(ctx, email, password)
}

func (p *portalAPIImpl) Register(ctx context.Context, req boundary.RegisterRequest) (*domain.Session, error) {
	return p.services.AuthService.Register(ctx, req)
}

func (p *portalAPIImpl) Logout(ctx context.Context) error {
	if _, err := p.CurrentSession(ctx); err != nil && !apperrors.IsErrorType(err, apperrors.ErrorTypeTimeout) {
		return err
	}
	return p.services.AuthService.Logout(ctx)
}

func (p *portalAPIImpl) UpdateSettings(ctx context.Context, update domain.UserUpdate) (*domain.User, error) {
	if err := p.requireSession(ctx, "update settings"); err != nil {
		return nil, err
	}
	return p.services.AuthService.UpdateSettings(ctx, update)
}

func (p *portalAPIImpl) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if err := p.requireSession(ctx, "change password"); err != nil {
		return err
	}
	return p.services.AuthService.ChangePassword(ctx, current, next, confirm)
}

// ========== Company profile ==========

func (p *portalAPIImpl) GetCompanyProfile(ctx context.Context) (*domain.CompanyProfile, error) {
	if err := p.requireSession(ctx, "fetch company profile"); err != nil {
		return nil, err
	}
	return p.services.ProfileService.Fetch(ctx)
}

func (p *portalAPIImpl) SaveCompanyProfile(ctx context.Context, profile domain.CompanyProfile) (*domain.CompanyProfile, error) {
	if err := p.requireSession(ctx, "save company profile"); err != nil {
		return nil, err
	}
	return p.services.ProfileService.Save(ctx, profile)
}

func (p *portalAPIImpl) UpdateCompanyProfile(ctx context.Context, update domain.CompanyProfileUpdate) (*domain.CompanyProfile, error) {
	if err := p.ensureProfile(ctx, "update company profile"); err != nil {
		return nil, err
	}
	return p.services.ProfileService.Merge(ctx, update)
}

func (p *portalAPIImpl) AddSocialLink(ctx context.Context, link domain.SocialLink) (*domain.CompanyProfile, error) {
	if err := p.ensureProfile(ctx, "add social link"); err != nil {
		return nil, err
	}
	if err := p.services.ProfileService.AddSocialLink(link); err != nil {
		return nil, err
	}
	return p.services.ProfileService.Sync(ctx)
}

func (p *portalAPIImpl) RemoveSocialLink(ctx context.Context, index int) (*domain.CompanyProfile, error) {
	if err := p.ensureProfile(ctx, "remove social link"); err != nil {
		return nil, err
	}
	if err := p.services.ProfileService.RemoveSocialLink(index); err != nil {
		return nil, err
	}
	return p.services.ProfileService.Sync(ctx)
}

func (p *portalAPIImpl) UploadImage(ctx context.Context, kind domain.ImageKind, img boundary.Image) (string, error) {
	if err := p.requireSession(ctx, "upload image"); err != nil {
		return "", err
	}
	return p.services.ProfileService.UploadImage(ctx, kind, img)
}

// ========== Tasks ==========

func (p *portalAPIImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if err := p.ensureTasks(ctx, "list tasks"); err != nil {
		return nil, err
	}
	return p.store.Tasks(), nil
}

func (p *portalAPIImpl) AddTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	if err := p.ensureTasks(ctx, "add task"); err != nil {
		return nil, err
	}
	return p.services.TaskService.Add(ctx, task)
}

func (p *portalAPIImpl) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := p.ensureTasks(ctx, "toggle task"); err != nil {
		return nil, err
	}
	task, err := p.services.TaskService.Toggle(ctx, id)
	if err == nil && task == nil {
		return nil, apperrors.NewNotFoundError("task", id)
	}
	return task, err
}

func (p *portalAPIImpl) UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	if err := p.ensureTasks(ctx, "update task"); err != nil {
		return nil, err
	}
	task, err := p.services.TaskService.Update(ctx, id, update)
	if err == nil && task == nil {
		return nil, apperrors.NewNotFoundError("task", id)
	}
	return task, err
}

func (p *portalAPIImpl) DeleteTask(ctx context.Context, id string) error {
	if err := p.ensureTasks(ctx, "delete task"); err != nil {
		return err
	}
	if _, ok := p.store.Task(id); !ok {
		return apperrors.NewNotFoundError("task", id)
	}
	return p.services.TaskService.Delete(ctx, id)
}

// ========== Dashboard ==========

func (p *portalAPIImpl) GetDashboard(ctx context.Context) (*services.Dashboard, error) {
	if err := p.requireSession(ctx, "load dashboard"); err != nil {
		return nil, err
	}
	if _, err := p.services.ProfileService.Fetch(ctx); err != nil {
		return nil, err
	}
	if _, err := p.services.TaskService.Load(ctx); err != nil {
		return nil, err
	}
	return p.services.ReportingService.Dashboard(timeNow()), nil
}

func (p *portalAPIImpl) Subscribe(fn store.Listener) (unsubscribe func()) {
	return p.store.Subscribe(fn)
}
