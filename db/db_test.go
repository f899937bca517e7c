package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite_AppliesMigrations(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "accounts.db")

	sdb, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sdb.Close() })

	var count int
	require.NoError(t, sdb.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'users'`))
	assert.Equal(t, 1, count)

	insert := `INSERT INTO users (email, password_hash, created_at, updated_at)
		VALUES (?, 'h', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	_, err = sdb.ExecContext(ctx, insert, "dup@example.com")
	require.NoError(t, err)
	_, err = sdb.ExecContext(ctx, insert, "dup@example.com")
	assert.Error(t, err, "email must be unique")
}

func TestOpenSQLite_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "accounts.db")

	first, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}

func TestNewPostgresPool_InvalidURL(t *testing.T) {
	_, err := NewPostgresPool(context.Background(), "://not-a-url")
	assert.ErrorContains(t, err, "invalid DB URL")
}
