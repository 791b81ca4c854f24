package local

import (
	"context"

	"company-portal/internal/boundary"
	"company-portal/internal/repository/sqlite"
)

// CredentialStore keeps the bearer token in the credentials table.
type CredentialStore struct {
	repo sqlite.Repository
}

var _ boundary.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore creates a CredentialStore over repo.
func NewCredentialStore(repo sqlite.Repository) *CredentialStore {
	return &CredentialStore{repo: repo}
}

// LoadToken returns the stored token or "".
func (c *CredentialStore) LoadToken(ctx context.Context) (string, error) {
	return c.repo.LoadCredential(ctx)
}

// SaveToken replaces the stored token.
func (c *CredentialStore) SaveToken(ctx context.Context, token string) error {
	return c.repo.SaveCredential(ctx, token)
}

// EraseToken removes the stored token.
func (c *CredentialStore) EraseToken(ctx context.Context) error {
	return c.repo.DeleteCredential(ctx)
}
