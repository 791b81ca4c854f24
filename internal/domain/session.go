package domain

import "strings"

// User is the account behind a session.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	MobileNo string `json:"mobile_no,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// DisplayName returns the full name, falling back to the email.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Email
}

// Session is the authenticated state of the portal.
type Session struct {
	User          User   `json:"user"`
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
}

// NewSession builds a session whose authenticated flag is true iff the
// token is non-empty.
func NewSession(user User, token string) *Session {
	token = strings.TrimSpace(token)
	return &Session{
		User:          user,
		Token:         token,
		Authenticated: token != "",
	}
}

// IsAuthenticated is safe to call on a nil session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Authenticated && s.Token != ""
}

// UserUpdate carries the settings-page edit of the current user.
type UserUpdate struct {
	FullName *string
	Email    *string
	MobileNo *string
}

// Apply shallow-merges the set fields into u and returns the result.
func (up UserUpdate) Apply(u User) User {
	setString(&u.FullName, up.FullName)
	setString(&u.Email, up.Email)
	setString(&u.MobileNo, up.MobileNo)
	return u
}
