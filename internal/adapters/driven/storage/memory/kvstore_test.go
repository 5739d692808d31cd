package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	_, err := store.Get(ctx, "bizpilot-original-prompt")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Set(ctx, "bizpilot-original-prompt", "Tea stall"))
	require.NoError(t, store.Set(ctx, "bizpilot-generated-data", "{}"))

	val, err := store.Get(ctx, "bizpilot-original-prompt")
	require.NoError(t, err)
	assert.Equal(t, "Tea stall", val)
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.Delete(ctx, "bizpilot-original-prompt", "bizpilot-generated-data", "absent"))
	assert.Equal(t, 0, store.Len())
}

func TestKVStore_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()
	boom := errors.New("disk full")
	store.SetErr = boom
	store.DeleteErr = boom

	assert.ErrorIs(t, store.Set(ctx, "k", "v"), boom)
	assert.ErrorIs(t, store.Delete(ctx, "k"), boom)
	assert.Equal(t, 0, store.Len())
}

func TestKVStore_SetMany(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	require.NoError(t, store.SetMany(ctx, map[string]string{
		"bizpilot-generated-data":  `{"idea":{}}`,
		"bizpilot-original-prompt": "Tea stall",
	}))
	assert.Equal(t, 2, store.Len())

	t.Run("failing key writes nothing", func(t *testing.T) {
		store.KeyErrs = map[string]error{"bizpilot-original-prompt": errors.New("disk full")}

		err := store.SetMany(ctx, map[string]string{
			"bizpilot-generated-data":  `{"idea":{"title":"Bakery"}}`,
			"bizpilot-original-prompt": "Bakery",
		})

		require.Error(t, err)
		val, getErr := store.Get(ctx, "bizpilot-generated-data")
		require.NoError(t, getErr)
		assert.Equal(t, `{"idea":{}}`, val)
	})
}
