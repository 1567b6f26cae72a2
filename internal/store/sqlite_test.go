package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db)
}

func TestSQLiteRepository_GetMissingKey(t *testing.T) {
	repo := setupRepo(t)

	v, err := repo.Get(context.Background(), "current_token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_SetGetOverwrite(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "current_token", []byte("tok-1")))

	v, err := repo.Get(ctx, "current_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), v)

	require.NoError(t, repo.Set(ctx, "current_token", []byte("tok-2")))
	v, err = repo.Get(ctx, "current_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-2"), v)
}

func TestSQLiteRepository_SetAllAndClear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetAll(ctx, map[string][]byte{
		"current_token": []byte("tok"),
		"current_user":  []byte(`{"id":1}`),
	}))

	v, err := repo.Get(ctx, "current_user")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1}`, string(v))

	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{"current_token", "current_user"} {
		v, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v, "key %s should be gone", key)
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "current_token", []byte("tok")))
	require.NoError(t, repo.Delete(ctx, "current_token"))

	v, err := repo.Get(ctx, "current_token")
	require.NoError(t, err)
	require.Nil(t, v)

	// deleting an absent key is fine
	require.NoError(t, repo.Delete(ctx, "current_token"))
}
