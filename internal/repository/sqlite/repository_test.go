package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "company-portal/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*SQLiteRepository, func()) {
	dbPath := filepath.Join(t.TempDir(), "portal.db")

	repo, err := New(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
	}

	return repo, cleanup
}

func createTestUser(t *testing.T, repo *SQLiteRepository, id, email string) *User {
	user := &User{
		ID:           id,
		FullName:     "Test User",
		Email:        email,
		MobileNo:     "555-0100",
		PasswordHash: "hash",
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func datePtr(s string) *time.Time {
	d, _ := time.Parse(dateLayout, s)
	return &d
}

func TestUsers(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := createTestUser(t, repo, "u1", "Owner@Example.com")
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("should get user by id", func(t *testing.T) {
		got, err := repo.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Test User", got.FullName)
		assert.Equal(t, "Owner@Example.com", got.Email)
	})

	t.Run("should get user by email ignoring case", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "owner@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
	})

	t.Run("should return not found for unknown user", func(t *testing.T) {
		_, err := repo.GetUser(ctx, "missing")
		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("should reject duplicate email", func(t *testing.T) {
		err := repo.CreateUser(ctx, &User{ID: "u2", Email: "Owner@Example.com", PasswordHash: "x"})
		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
	})

	t.Run("should update user", func(t *testing.T) {
		user.FullName = "Renamed"
		user.MobileNo = "555-0199"
		require.NoError(t, repo.UpdateUser(ctx, user))

		got, err := repo.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.FullName)
		assert.Equal(t, "555-0199", got.MobileNo)
	})

	t.Run("should return not found when updating unknown user", func(t *testing.T) {
		err := repo.UpdateUser(ctx, &User{ID: "missing", Email: "m@example.com"})
		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestAuthTokens(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	createTestUser(t, repo, "u1", "a@example.com")

	require.NoError(t, repo.CreateAuthToken(ctx, "tok-1", "u1"))

	user, err := repo.GetUserByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = repo.GetUserByToken(ctx, "tok-unknown")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	require.NoError(t, repo.DeleteAuthToken(ctx, "tok-1"))
	_, err = repo.GetUserByToken(ctx, "tok-1")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestCredential(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	token, err := repo.LoadCredential(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, repo.SaveCredential(ctx, "first"))
	require.NoError(t, repo.SaveCredential(ctx, "second"))

	token, err = repo.LoadCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, repo.DeleteCredential(ctx))
	token, err = repo.LoadCredential(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	// erasing twice is harmless
	assert.NoError(t, repo.DeleteCredential(ctx))
}

func TestCompanyProfiles(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	createTestUser(t, repo, "u1", "a@example.com")

	_, err := repo.GetCompanyProfile(ctx, "u1")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	profile := &CompanyProfile{
		OwnerID:     "u1",
		CompanyName: "Acme",
		City:        "Springfield",
		Industry:    "Technology",
		FoundedDate: datePtr("2001-04-09"),
		SocialLinks: `[{"platform":"x","url":"https://x.com/acme"}]`,
	}
	require.NoError(t, repo.SaveCompanyProfile(ctx, profile))

	got, err := repo.GetCompanyProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "Springfield", got.City)
	require.NotNil(t, got.FoundedDate)
	assert.Equal(t, "2001-04-09", got.FoundedDate.Format(dateLayout))
	assert.JSONEq(t, profile.SocialLinks, got.SocialLinks)

	t.Run("should replace on second save", func(t *testing.T) {
		profile.CompanyName = "Acme Corp"
		profile.FoundedDate = nil
		profile.SocialLinks = ""
		require.NoError(t, repo.SaveCompanyProfile(ctx, profile))

		got, err := repo.GetCompanyProfile(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", got.CompanyName)
		assert.Nil(t, got.FoundedDate)
		assert.Equal(t, "[]", got.SocialLinks)
	})
}

func TestTasks(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	tasks := []*Task{
		{ID: "t1", OwnerID: "u1", Title: "first", Priority: "low", Category: "general"},
		{ID: "t2", OwnerID: "u1", Title: "second", Priority: "high", Category: "ops", DueDate: datePtr("2024-03-10")},
		{ID: "t1", OwnerID: "u2", Title: "other owner", Priority: "medium", Category: "general"},
	}
	for _, task := range tasks {
		require.NoError(t, repo.CreateTask(ctx, task))
	}
	assert.Equal(t, int64(1), tasks[0].Position)
	assert.Equal(t, int64(2), tasks[1].Position)
	assert.Equal(t, int64(1), tasks[2].Position)

	t.Run("should list tasks of an owner in insertion order", func(t *testing.T) {
		list, err := repo.ListTasks(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "t1", list[0].ID)
		assert.Equal(t, "t2", list[1].ID)
		require.NotNil(t, list[1].DueDate)
		assert.Equal(t, "2024-03-10", list[1].DueDate.Format(dateLayout))
		assert.Nil(t, list[0].DueDate)
	})

	t.Run("should reject a duplicate id for the same owner", func(t *testing.T) {
		err := repo.CreateTask(ctx, &Task{ID: "t1", OwnerID: "u1", Title: "dup", Priority: "low", Category: "general"})
		assert.Error(t, err)
	})

	t.Run("should update a task", func(t *testing.T) {
		task := *tasks[0]
		task.Completed = true
		task.Title = "first, done"
		require.NoError(t, repo.UpdateTask(ctx, &task))

		list, err := repo.ListTasks(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, list[0].Completed)
		assert.Equal(t, "first, done", list[0].Title)
	})

	t.Run("should return not found when updating unknown task", func(t *testing.T) {
		err := repo.UpdateTask(ctx, &Task{ID: "nope", OwnerID: "u1"})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("should delete only the owner's task", func(t *testing.T) {
		require.NoError(t, repo.DeleteTask(ctx, "u1", "t1"))

		list, err := repo.ListTasks(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "t2", list[0].ID)

		other, err := repo.ListTasks(ctx, "u2")
		require.NoError(t, err)
		assert.Len(t, other, 1)
	})

	t.Run("should return not found when deleting unknown task", func(t *testing.T) {
		err := repo.DeleteTask(ctx, "u1", "t1")
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("should keep appending after the last position", func(t *testing.T) {
		task := &Task{ID: "t3", OwnerID: "u1", Title: "third", Priority: "low", Category: "general"}
		require.NoError(t, repo.CreateTask(ctx, task))
		assert.Equal(t, int64(3), task.Position)
	})
}

func TestQueryTimeout(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "portal.db")
	repo, err := NewWithOptions(dbPath, Options{QueryTimeout: time.Second})
	require.NoError(t, err)
	defer repo.Close()

	list, err := repo.ListTasks(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)
}
