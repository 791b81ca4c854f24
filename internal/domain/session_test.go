package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSession(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		authenticated bool
	}{
		{name: "should authenticate with a token", token: "abc", authenticated: true},
		{name: "should not authenticate with an empty token", token: "", authenticated: false},
		{name: "should not authenticate with a blank token", token: "  ", authenticated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(User{Email: "a@example.com"}, tt.token)
			assert.Equal(t, tt.authenticated, session.Authenticated)
			assert.Equal(t, tt.authenticated, session.IsAuthenticated())
		})
	}
}

func TestSession_IsAuthenticatedNil(t *testing.T) {
	var session *Session
	assert.False(t, session.IsAuthenticated())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada", User{FullName: "Ada", Email: "ada@example.com"}.DisplayName())
	assert.Equal(t, "ada@example.com", User{FullName: " ", Email: "ada@example.com"}.DisplayName())
}

func TestUserUpdate_Apply(t *testing.T) {
	mobile := "555"
	user := UserUpdate{MobileNo: &mobile}.Apply(User{FullName: "Ada", MobileNo: "1"})
	assert.Equal(t, "Ada", user.FullName)
	assert.Equal(t, "555", user.MobileNo)
}

func TestDates(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	local := time.Date(2024, 3, 10, 23, 30, 0, 0, loc)

	day := DateOf(local)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), day)

	parsed, err := ParseDate(" 2024-03-13 ")
	assert.NoError(t, err)
	assert.Equal(t, 3, DaysBetween(day, parsed))
	assert.Equal(t, -3, DaysBetween(parsed, day))

	_, err = ParseDate("10/03/2024")
	assert.Error(t, err)

	assert.Equal(t, "", FormatDate(nil))
	assert.Equal(t, "2024-03-13", FormatDate(&parsed))
}
