package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/bakeclient/internal/client/storage"
)

func createTestTokenStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "token_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestStorage_SaveGetDeleteToken(t *testing.T) {
	ctx := context.Background()
	store := createTestTokenStorage(t)

	_, err := store.GetToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	require.NoError(t, store.SaveToken(ctx, "tok123"))

	got, err := store.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok123", got)

	// перезапись
	require.NoError(t, store.SaveToken(ctx, "tok456"))
	got, err = store.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok456", got)

	require.NoError(t, store.DeleteToken(ctx))

	_, err = store.GetToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	err = store.DeleteToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestStorage_TokenSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveToken(ctx, "persisted"))
	require.NoError(t, store.Close())

	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	got, err := store.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestStorage_ClosedStorage(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.SaveToken(ctx, "x"), storage.ErrStorageClosed)
	_, err = store.GetToken(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.DeleteToken(ctx), storage.ErrStorageClosed)
}

func TestStorage_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestTokenStorage(t)

	// Удаляем bucket auth напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketAuth)
	})
	require.NoError(t, err)

	err = store.SaveToken(ctx, "x")
	assert.ErrorContains(t, err, "auth bucket not found")

	_, err = store.GetToken(ctx)
	assert.ErrorContains(t, err, "auth bucket not found")

	err = store.DeleteToken(ctx)
	assert.ErrorContains(t, err, "auth bucket not found")
}
