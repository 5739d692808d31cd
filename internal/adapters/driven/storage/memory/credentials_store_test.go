package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

func TestCredentialsStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewCredentialsStore()

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	creds := domain.Credentials{
		Token:   "tok-1",
		Account: domain.Account{ID: "u1", Email: "asha@example.com", Tier: domain.TierPro},
	}
	require.NoError(t, store.Save(ctx, creds))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, creds, *got)

	got.Token = "mutated"
	again, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", again.Token)

	require.NoError(t, store.Delete(ctx))
	require.NoError(t, store.Delete(ctx))
	_, err = store.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
