package services

import (
	"context"
	"sync"

	"company-portal/internal/boundary"
	"company-portal/internal/config"
	"company-portal/internal/domain"
	"company-portal/internal/store"
)

// fakeBackend is an in-memory boundary.Backend with per-method failures
type fakeBackend struct {
	mu       sync.Mutex
	tokens   map[string]domain.User
	password string
	profile  *domain.CompanyProfile
	tasks    []domain.Task
	uploads  []boundary.Image
	calls    []string

	fail map[string]error
	hang map[string]bool
}

var _ boundary.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		tokens: map[string]domain.User{
			"valid-token": {ID: "u1", FullName: "Ada Lovelace", Email: "ada@example.com"},
		},
		password: "secret1",
		fail:     map[string]error{},
		hang:     map[string]bool{},
	}
}

func (f *fakeBackend) enter(ctx context.Context, method, token string, authenticated bool) (domain.User, error) {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	err := f.fail[method]
	hang := f.hang[method]
	user, ok := f.tokens[token]
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return domain.User{}, ctx.Err()
	}
	if err != nil {
		return domain.User{}, err
	}
	if authenticated && !ok {
		return domain.User{}, boundary.ErrUnauthorized
	}
	return user, nil
}

func (f *fakeBackend) called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*boundary.AuthResult, error) {
	if _, err := f.enter(ctx, "Login", "", false); err != nil {
		return nil, err
	}
	if email != "ada@example.com" || password != f.password {
		return nil, boundary.ErrInvalidCredentials
	}
	return &boundary.AuthResult{User: f.tokens["valid-token"], Token: "valid-token"}, nil
}

func (f *fakeBackend) Register(ctx context.Context, req boundary.RegisterRequest) (*boundary.AuthResult, error) {
	if _, err := f.enter(ctx, "Register", "", false); err != nil {
		return nil, err
	}
	user := domain.User{ID: "u2", FullName: req.FullName, Email: req.Email, MobileNo: req.MobileNo, Gender: req.Gender}
	f.mu.Lock()
	f.tokens["new-token"] = user
	f.mu.Unlock()
	return &boundary.AuthResult{User: user, Token: "new-token"}, nil
}

func (f *fakeBackend) Me(ctx context.Context, token string) (*domain.User, error) {
	user, err := f.enter(ctx, "Me", token, true)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (f *fakeBackend) UpdateMe(ctx context.Context, token string, user domain.User) (*domain.User, error) {
	if _, err := f.enter(ctx, "UpdateMe", token, true); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.tokens[token] = user
	f.mu.Unlock()
	return &user, nil
}

func (f *fakeBackend) ChangePassword(ctx context.Context, token, current, next string) error {
	if _, err := f.enter(ctx, "ChangePassword", token, true); err != nil {
		return err
	}
	if current != f.password {
		return boundary.ErrInvalidCredentials
	}
	f.password = next
	return nil
}

func (f *fakeBackend) Logout(ctx context.Context, token string) error {
	_, err := f.enter(ctx, "Logout", token, false)
	return err
}

func (f *fakeBackend) FetchCompanyProfile(ctx context.Context, token string) (*domain.CompanyProfile, error) {
	if _, err := f.enter(ctx, "FetchCompanyProfile", token, true); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile == nil {
		return nil, boundary.ErrNotFound
	}
	profile := f.profile.Clone()
	return &profile, nil
}

func (f *fakeBackend) SaveCompanyProfile(ctx context.Context, token string, profile domain.CompanyProfile) (*domain.CompanyProfile, error) {
	if _, err := f.enter(ctx, "SaveCompanyProfile", token, true); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := profile.Clone()
	f.profile = &stored
	return &profile, nil
}

func (f *fakeBackend) UploadImage(ctx context.Context, token string, kind domain.ImageKind, img boundary.Image) (string, error) {
	if _, err := f.enter(ctx, "UploadImage", token, true); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, img)
	location := "https://cdn.example.com/" + string(kind) + ".png"
	if f.profile == nil {
		f.profile = &domain.CompanyProfile{}
	}
	if kind == domain.ImageLogo {
		f.profile.LogoURL = location
	} else {
		f.profile.BannerURL = location
	}
	return location, nil
}

func (f *fakeBackend) ListTasks(ctx context.Context, token string) ([]domain.Task, error) {
	if _, err := f.enter(ctx, "ListTasks", token, true); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Task(nil), f.tasks...), nil
}

func (f *fakeBackend) CreateTask(ctx context.Context, token string, task domain.Task) error {
	if _, err := f.enter(ctx, "CreateTask", token, true); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeBackend) UpdateTask(ctx context.Context, token string, task domain.Task) error {
	if _, err := f.enter(ctx, "UpdateTask", token, true); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i] = task
			return nil
		}
	}
	return boundary.ErrNotFound
}

func (f *fakeBackend) DeleteTask(ctx context.Context, token string, id string) error {
	if _, err := f.enter(ctx, "DeleteTask", token, true); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return boundary.ErrNotFound
}

// fakeCredentials is an in-memory boundary.CredentialStore
type fakeCredentials struct {
	token  string
	erased int
	err    error
}

func (c *fakeCredentials) LoadToken(ctx context.Context) (string, error) { return c.token, c.err }

func (c *fakeCredentials) SaveToken(ctx context.Context, token string) error {
	if c.err != nil {
		return c.err
	}
	c.token = token
	return nil
}

func (c *fakeCredentials) EraseToken(ctx context.Context) error {
	c.erased++
	c.token = ""
	return c.err
}

type fixture struct {
	backend     *fakeBackend
	credentials *fakeCredentials
	store       *store.Store
	services    *ServiceContainer
}

// setupServices returns services over fakes with a logged-in session
func setupServices(authenticated bool) *fixture {
	backend := newFakeBackend()
	credentials := &fakeCredentials{}
	st := store.New()
	if authenticated {
		st.SetSession(domain.NewSession(backend.tokens["valid-token"], "valid-token"))
		credentials.token = "valid-token"
	}

	cfg := config.NewConfig()
	return &fixture{
		backend:     backend,
		credentials: credentials,
		store:       st,
		services: NewServiceContainer(Dependencies{
			Backend:     backend,
			Credentials: credentials,
			Store:       st,
			Config:      cfg,
		}),
	}
}
