package validation

import (
	"testing"

	"company-portal/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAccountValidator_ValidateCredentials(t *testing.T) {
	v := NewAccountValidator()

	tests := []struct {
		name     string
		email    string
		password string
		fields   []string
	}{
		{name: "should accept valid credentials", email: "ada@example.com", password: "secret1"},
		{name: "should require both", fields: []string{"email", "password"}},
		{name: "should reject malformed email", email: "ada", password: "secret1", fields: []string{"email"}},
		{name: "should reject short password", email: "ada@example.com", password: "12345", fields: []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCredentials(tt.email, tt.password)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.fields, fields(err))
		})
	}
}

func TestAccountValidator_ValidateRegistration(t *testing.T) {
	v := NewAccountValidator()

	user := domain.User{FullName: "Ada Lovelace", Email: "ada@example.com", MobileNo: "+44 20 7946 0000", Gender: "f"}
	assert.NoError(t, v.ValidateRegistration(user, "analytical"))

	bad := domain.User{FullName: " ", Email: "ada", MobileNo: "call me", Gender: "x"}
	assert.Equal(t, []string{"full_name", "email", "mobile_no", "gender", "password"}, fields(v.ValidateRegistration(bad, "")))
}

func TestAccountValidator_ValidateUserUpdate(t *testing.T) {
	v := NewAccountValidator()

	email := "new@example.com"
	badEmail := "new"
	mobile := "555-0100"

	assert.NoError(t, v.ValidateUserUpdate(domain.UserUpdate{}))
	assert.NoError(t, v.ValidateUserUpdate(domain.UserUpdate{Email: &email, MobileNo: &mobile}))
	assert.Equal(t, []string{"email"}, fields(v.ValidateUserUpdate(domain.UserUpdate{Email: &badEmail})))
}

func TestAccountValidator_ValidatePasswordChange(t *testing.T) {
	v := NewAccountValidator()

	tests := []struct {
		name                   string
		current, next, confirm string
		fields                 []string
	}{
		{name: "should accept a confirmed change", current: "old-pass", next: "new-pass", confirm: "new-pass"},
		{name: "should reject mismatched confirmation", current: "old-pass", next: "new-pass", confirm: "new-pas", fields: []string{"confirm_password"}},
		{name: "should require current password", next: "new-pass", confirm: "new-pass", fields: []string{"current_password"}},
		{name: "should reject short new password", current: "old-pass", next: "abc", confirm: "abc", fields: []string{"new_password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePasswordChange(tt.current, tt.next, tt.confirm)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.fields, fields(err))
		})
	}
}
