package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-portal/internal/boundary"
	"company-portal/internal/config"
	"company-portal/internal/domain"
	apperrors "company-portal/internal/errors"
	"company-portal/internal/store"
)

func TestAuthService_Restore(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		fail          error
		wantSession   bool
		wantErrorType *apperrors.ErrorType
		wantErased    bool
	}{
		{
			name:        "should restore a valid persisted token",
			token:       "valid-token",
			wantSession: true,
		},
		{
			name:  "should stay logged out without a persisted token",
			token: "",
		},
		{
			name:       "should erase a rejected token",
			token:      "expired-token",
			wantErased: true,
		},
		{
			name:          "should surface other boundary failures",
			token:         "valid-token",
			fail:          errors.New("connection refused"),
			wantErrorType: errorTypePtr(apperrors.ErrorTypeBoundary),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupServices(false)
			f.credentials.token = tt.token
			if tt.fail != nil {
				f.backend.fail["Me"] = tt.fail
			}

			session, err := f.services.AuthService.Restore(context.Background())

			if tt.wantErrorType != nil {
				require.Error(t, err)
				assert.True(t, apperrors.IsErrorType(err, *tt.wantErrorType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSession, session != nil)
			assert.Equal(t, tt.wantSession, f.store.Session().IsAuthenticated())
			if tt.wantErased {
				assert.Equal(t, 1, f.credentials.erased)
				assert.Empty(t, f.credentials.token)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("should start a session and persist the token", func(t *testing.T) {
		f := setupServices(false)

		session, err := f.services.AuthService.Login(context.Background(), " ada@example.com ", "secret1")
		require.NoError(t, err)
		assert.True(t, session.IsAuthenticated())
		assert.Equal(t, "valid-token", f.credentials.token)
		assert.Equal(t, "Ada Lovelace", f.store.Session().User.FullName)
	})

	t.Run("should reject malformed input before calling out", func(t *testing.T) {
		f := setupServices(false)

		_, err := f.services.AuthService.Login(context.Background(), "not-an-email", "123")
		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
		assert.Zero(t, f.backend.called("Login"))
	})

	t.Run("should report invalid credentials as a boundary error", func(t *testing.T) {
		f := setupServices(false)

		_, err := f.services.AuthService.Login(context.Background(), "ada@example.com", "wrong-password")
		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeBoundary))
		assert.ErrorIs(t, err, boundary.ErrInvalidCredentials)
		assert.Nil(t, f.store.Session())
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("should register and log in", func(t *testing.T) {
		f := setupServices(false)

		session, err := f.services.AuthService.Register(context.Background(), boundary.RegisterRequest{
			FullName: "Grace Hopper",
			Email:    "grace@example.com",
			MobileNo: "+1 (555) 010-0200",
			Gender:   "F",
			Password: "cobol60",
		})
		require.NoError(t, err)
		assert.Equal(t, "new-token", session.Token)
		assert.Equal(t, "f", session.User.Gender)
		assert.Equal(t, "new-token", f.credentials.token)
	})

	t.Run("should reject an invalid form", func(t *testing.T) {
		f := setupServices(false)

		_, err := f.services.AuthService.Register(context.Background(), boundary.RegisterRequest{
			Email:    "grace",
			Gender:   "x",
			Password: "short",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
		assert.Zero(t, f.backend.called("Register"))
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("should clear session and profile but keep tasks", func(t *testing.T) {
		f := setupServices(true)
		f.store.SetCompanyProfile(&domain.CompanyProfile{CompanyName: "Acme"})
		require.NoError(t, f.store.AddTask(domain.NewTask("t1", "Ship")))

		require.NoError(t, f.services.AuthService.Logout(context.Background()))

		assert.Nil(t, f.store.Session())
		assert.Nil(t, f.store.CompanyProfile())
		assert.Len(t, f.store.Tasks(), 1)
		assert.Empty(t, f.credentials.token)
		assert.Equal(t, 1, f.backend.called("Logout"))
	})

	t.Run("should end the local session when the backend fails", func(t *testing.T) {
		f := setupServices(true)
		f.backend.fail["Logout"] = errors.New("offline")

		err := f.services.AuthService.Logout(context.Background())
		assert.Error(t, err)
		assert.Nil(t, f.store.Session())
		assert.Empty(t, f.credentials.token)
	})
}

func TestAuthService_UpdateSettings(t *testing.T) {
	t.Run("should merge the change into the session user", func(t *testing.T) {
		f := setupServices(true)
		name := "Ada King"

		user, err := f.services.AuthService.UpdateSettings(context.Background(), domain.UserUpdate{FullName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Ada King", user.FullName)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "Ada King", f.store.Session().User.FullName)
	})

	t.Run("should validate the email", func(t *testing.T) {
		f := setupServices(true)
		email := "nope"

		_, err := f.services.AuthService.UpdateSettings(context.Background(), domain.UserUpdate{Email: &email})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
		assert.Zero(t, f.backend.called("UpdateMe"))
	})

	t.Run("should require a session", func(t *testing.T) {
		f := setupServices(false)
		name := "Ada"

		_, err := f.services.AuthService.UpdateSettings(context.Background(), domain.UserUpdate{FullName: &name})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUnauthorized))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		next      string
		confirm   string
		errorType *apperrors.ErrorType
	}{
		{name: "should change the password", current: "secret1", next: "secret2", confirm: "secret2"},
		{name: "should reject a mismatched confirmation", current: "secret1", next: "secret2", confirm: "secret3",
			errorType: errorTypePtr(apperrors.ErrorTypeValidation)},
		{name: "should reject a short password", current: "secret1", next: "abc", confirm: "abc",
			errorType: errorTypePtr(apperrors.ErrorTypeValidation)},
		{name: "should surface a wrong current password", current: "wrong", next: "secret2", confirm: "secret2",
			errorType: errorTypePtr(apperrors.ErrorTypeBoundary)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupServices(true)

			err := f.services.AuthService.ChangePassword(context.Background(), tt.current, tt.next, tt.confirm)

			if tt.errorType != nil {
				require.Error(t, err)
				assert.True(t, apperrors.IsErrorType(err, *tt.errorType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "secret2", f.backend.password)
		})
	}
}

func TestGateway_Timeout(t *testing.T) {
	backend := newFakeBackend()
	backend.hang["Me"] = true

	cfg := config.NewConfig()
	cfg.Boundary.Timeout = 20 * time.Millisecond
	st := store.New()
	services := NewServiceContainer(Dependencies{
		Backend:     backend,
		Credentials: &fakeCredentials{token: "valid-token"},
		Store:       st,
		Config:      cfg,
	})

	start := time.Now()
	_, err := services.AuthService.Restore(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTimeout))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Nil(t, st.Session())
}

func TestGateway_UnauthorizedEndsSession(t *testing.T) {
	f := setupServices(true)
	f.backend.fail["ListTasks"] = boundary.ErrUnauthorized

	_, err := f.services.TaskService.Load(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUnauthorized))
	assert.Nil(t, f.store.Session())
	assert.Empty(t, f.credentials.token)
	assert.Equal(t, 1, f.credentials.erased)
}

func errorTypePtr(t apperrors.ErrorType) *apperrors.ErrorType {
	return &t
}
