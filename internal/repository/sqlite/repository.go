package sqlite

import (
	"context"
	"database/sql"
	"time"

	apperrors "company-portal/internal/errors"
	"company-portal/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error

	// Bearer tokens issued by the local backend
	CreateAuthToken(ctx context.Context, token string, userID string) error
	GetUserByToken(ctx context.Context, token string) (*User, error)
	DeleteAuthToken(ctx context.Context, token string) error

	// The single persisted client credential
	LoadCredential(ctx context.Context) (string, error)
	SaveCredential(ctx context.Context, token string) error
	DeleteCredential(ctx context.Context) error

	// Company profiles
	GetCompanyProfile(ctx context.Context, ownerID string) (*CompanyProfile, error)
	SaveCompanyProfile(ctx context.Context, profile *CompanyProfile) error

	// Tasks
	ListTasks(ctx context.Context, ownerID string) ([]*Task, error)
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, ownerID string, id string) error

	// Utility
	Close() error
}

// Options tunes a repository instance
type Options struct {
	QueryTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens dbPath, applies pending migrations and returns the repository
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewDatabaseError("open database", err)
	}

	// every pooled connection to :memory: would otherwise see its own empty database
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, apperrors.NewDatabaseError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, apperrors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, timeout: opts.QueryTimeout}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

const userColumns = `id, full_name, email, mobile_no, gender, password_hash, created_at`

// CreateUser inserts a new user
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.db, query, user.ID, user.FullName, user.Email, user.MobileNo, user.Gender, user.PasswordHash, FormatTimeForDB(user.CreatedAt))
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (*User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", id, id)
}

// GetUserByEmail retrieves a user by email, case-insensitively
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower(?)`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", email, email)
}

// UpdateUser updates the profile fields and password hash of a user
func (r *SQLiteRepository) UpdateUser(ctx context.Context, user *User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE users
	SET full_name = ?, email = ?, mobile_no = ?, password_hash = ?
	WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "user", user.ID, user.FullName, user.Email, user.MobileNo, user.PasswordHash, user.ID)
}

// CreateAuthToken records a bearer token for a user
func (r *SQLiteRepository) CreateAuthToken(ctx context.Context, token string, userID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO auth_tokens (token, user_id, created_at) VALUES (?, ?, ?)`
	return Execute(ctx, r.db, query, token, userID, FormatTimeForDB(time.Now().UTC()))
}

// GetUserByToken resolves a bearer token to its user
func (r *SQLiteRepository) GetUserByToken(ctx context.Context, token string) (*User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT users.id, users.full_name, users.email, users.mobile_no, users.gender, users.password_hash, users.created_at
	FROM auth_tokens
	JOIN users ON users.id = auth_tokens.user_id
	WHERE auth_tokens.token = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "auth token", "<redacted>", token)
}

// DeleteAuthToken revokes a bearer token
func (r *SQLiteRepository) DeleteAuthToken(ctx context.Context, token string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return Execute(ctx, r.db, `DELETE FROM auth_tokens WHERE token = ?`, token)
}

// LoadCredential returns the persisted client token, or "" when none is stored
func (r *SQLiteRepository) LoadCredential(ctx context.Context) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var token string
	err := r.db.QueryRowContext(ctx, `SELECT token FROM credentials WHERE id = 1`).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", HandleDatabaseError("load credential", err)
	}
	return token, nil
}

// SaveCredential replaces the persisted client token
func (r *SQLiteRepository) SaveCredential(ctx context.Context, token string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO credentials (id, token) VALUES (1, ?)
	ON CONFLICT(id) DO UPDATE SET token = excluded.token`
	return Execute(ctx, r.db, query, token)
}

// DeleteCredential erases the persisted client token
func (r *SQLiteRepository) DeleteCredential(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return Execute(ctx, r.db, `DELETE FROM credentials WHERE id = 1`)
}

const profileColumns = `owner_id, company_name, address, city, state, country, postal_code,
	website, industry, founded_date, description, logo_url, banner_url, social_links, updated_at`

// GetCompanyProfile retrieves the profile owned by a user
func (r *SQLiteRepository) GetCompanyProfile(ctx context.Context, ownerID string) (*CompanyProfile, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM company_profiles WHERE owner_id = ?`
	return QuerySingle(ctx, r.db, query, ScanCompanyProfile, "company profile", ownerID, ownerID)
}

// SaveCompanyProfile inserts or replaces the profile owned by profile.OwnerID
func (r *SQLiteRepository) SaveCompanyProfile(ctx context.Context, profile *CompanyProfile) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	profile.UpdatedAt = time.Now().UTC()
	if profile.SocialLinks == "" {
		profile.SocialLinks = "[]"
	}

	query := `
	INSERT INTO company_profiles (` + profileColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(owner_id) DO UPDATE SET
		company_name = excluded.company_name,
		address      = excluded.address,
		city         = excluded.city,
		state        = excluded.state,
		country      = excluded.country,
		postal_code  = excluded.postal_code,
		website      = excluded.website,
		industry     = excluded.industry,
		founded_date = excluded.founded_date,
		description  = excluded.description,
		logo_url     = excluded.logo_url,
		banner_url   = excluded.banner_url,
		social_links = excluded.social_links,
		updated_at   = excluded.updated_at`

	return Execute(ctx, r.db, query,
		profile.OwnerID,
		profile.CompanyName,
		profile.Address,
		profile.City,
		profile.State,
		profile.Country,
		profile.PostalCode,
		profile.Website,
		profile.Industry,
		FormatDatePtrForDB(profile.FoundedDate),
		profile.Description,
		profile.LogoURL,
		profile.BannerURL,
		profile.SocialLinks,
		FormatTimeForDB(profile.UpdatedAt),
	)
}

const taskColumns = `id, owner_id, title, description, due_date, completed, priority, category, position`

// ListTasks retrieves all tasks of an owner in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context, ownerID string) ([]*Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = ? ORDER BY position ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", ownerID)
}

// CreateTask appends a task after the owner's last task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var position int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM tasks WHERE owner_id = ?`, task.OwnerID,
	).Scan(&position)
	if err != nil {
		return HandleDatabaseError("next task position", err)
	}

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := Execute(ctx, r.db, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		FormatDatePtrForDB(task.DueDate),
		task.Completed,
		task.Priority,
		task.Category,
		position,
	); err != nil {
		return err
	}

	task.Position = position
	return nil
}

// UpdateTask updates every mutable column of a task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE tasks
	SET title = ?, description = ?, due_date = ?, completed = ?, priority = ?, category = ?
	WHERE owner_id = ? AND id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", task.ID,
		task.Title,
		task.Description,
		FormatDatePtrForDB(task.DueDate),
		task.Completed,
		task.Priority,
		task.Category,
		task.OwnerID,
		task.ID,
	)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, ownerID string, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE owner_id = ? AND id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id, ownerID, id)
}
