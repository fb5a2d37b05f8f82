package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quka-ai/quka-client/pkg/testutils"
)

func TestChainPrefersMemory(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore("")
	file := NewFileStore(filepath.Join(t.TempDir(), "credentials.toml"))
	provider := Chain(mem, Persisted(file))

	assert.Equal(t, "", provider.Token(ctx))

	require.NoError(t, file.Save(ctx, "persisted-token"))
	assert.Equal(t, "persisted-token", provider.Token(ctx))

	mem.Set("memory-token")
	assert.Equal(t, "memory-token", provider.Token(ctx))

	mem.Clear()
	require.NoError(t, file.Clear(ctx))
	assert.Equal(t, "", provider.Token(ctx))
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credentials.toml")
	store := NewFileStore(path)

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save(ctx, "abc"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
}

func TestPersistedSwallowsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte("token = ["), 0o600))

	provider := Chain(NewMemoryStore(""), Persisted(NewFileStore(path)))
	assert.Equal(t, "", provider.Token(context.Background()))
}

func TestRedisStore(t *testing.T) {
	addr := testutils.RedisAddr()
	if addr == "" {
		t.Skip("QUKA_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	store := NewRedisStore(client, "quka:test:token")
	require.NoError(t, store.Clear(ctx))

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save(ctx, "redis-token"))
	assert.Equal(t, "redis-token", Persisted(store).Token(ctx))
	require.NoError(t, store.Clear(ctx))
}
