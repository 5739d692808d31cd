package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
)

// credentialsStore implements driven.CredentialsStore.
// The account is stored as JSON so new account fields need no migration.
type credentialsStore struct {
	store *Store
}

var _ driven.CredentialsStore = (*credentialsStore)(nil)

// Save stores credentials, replacing any existing login.
func (s *credentialsStore) Save(ctx context.Context, creds domain.Credentials) error {
	accountJSON, err := json.Marshal(creds.Account)
	if err != nil {
		return fmt.Errorf("marshalling account: %w", err)
	}

	now := time.Now()
	if creds.CreatedAt.IsZero() {
		creds.CreatedAt = now
	}
	if creds.UpdatedAt.IsZero() {
		creds.UpdatedAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO credentials (id, token, account, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			account = excluded.account,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`,
		creds.Token,
		string(accountJSON),
		creds.CreatedAt.UTC().Format(time.RFC3339Nano),
		creds.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// Get retrieves the stored credentials.
func (s *credentialsStore) Get(ctx context.Context) (*domain.Credentials, error) {
	var (
		creds       domain.Credentials
		accountJSON string
		createdAt   string
		updatedAt   string
	)
	err := s.store.db.QueryRowContext(ctx,
		"SELECT token, account, created_at, updated_at FROM credentials WHERE id = 1",
	).Scan(&creds.Token, &accountJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying credentials: %w", err)
	}

	if err := json.Unmarshal([]byte(accountJSON), &creds.Account); err != nil {
		return nil, fmt.Errorf("unmarshalling account: %w", err)
	}
	creds.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	creds.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	return &creds, nil
}

// Delete removes the stored credentials.
func (s *credentialsStore) Delete(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM credentials"); err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}
