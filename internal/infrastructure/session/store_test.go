package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt *time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "1"}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestStoreLifecycle(t *testing.T) {
	creds := &Credentials{
		Token:     "tok",
		Email:     "ana@softpan.test",
		FirstName: "Ana",
		LastName:  "Moreno",
		Roles:     []string{"Admin"},
	}

	t.Run("empty store is not authenticated", func(t *testing.T) {
		s := NewStore(NewMemoryStorage())
		assert.False(t, s.IsAuthenticated())
		assert.Empty(t, s.Token())
		assert.Nil(t, s.Current())
	})

	t.Run("Set persists and exposes credentials", func(t *testing.T) {
		storage := NewMemoryStorage()
		s := NewStore(storage)
		require.NoError(t, s.Set(creds))

		assert.True(t, s.IsAuthenticated())
		assert.Equal(t, "tok", s.Token())
		assert.Equal(t, "Ana Moreno", s.Current().FullName())

		stored, err := storage.Load()
		require.NoError(t, err)
		assert.Equal(t, creds.Email, stored.Email)
	})

	t.Run("Clear wipes memory and storage", func(t *testing.T) {
		storage := NewMemoryStorage()
		s := NewStore(storage)
		require.NoError(t, s.Set(creds))

		s.Clear()
		assert.False(t, s.IsAuthenticated())
		stored, err := storage.Load()
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("Clear is safe without an active session", func(t *testing.T) {
		s := NewStore(NewMemoryStorage())
		assert.NotPanics(t, s.Clear)
	})

	t.Run("HasRole", func(t *testing.T) {
		s := NewStore(NewMemoryStorage())
		require.NoError(t, s.Set(creds))
		assert.True(t, s.HasRole("Admin"))
		assert.False(t, s.HasRole("Cajero"))

		s.Clear()
		assert.False(t, s.HasRole("Admin"))
	})
}

func TestStoreHydrate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("hydrates valid persisted session", func(t *testing.T) {
		future := now.Add(time.Hour)
		storage := NewMemoryStorage()
		require.NoError(t, storage.Save(&Credentials{Token: signedToken(t, &future), Email: "ana@softpan.test"}))

		s := NewStore(storage, withClock(clock))
		require.NoError(t, s.Hydrate())
		assert.True(t, s.IsAuthenticated())
		assert.Equal(t, "ana@softpan.test", s.Current().Email)
	})

	t.Run("discards expired token and clears storage", func(t *testing.T) {
		past := now.Add(-time.Hour)
		storage := NewMemoryStorage()
		require.NoError(t, storage.Save(&Credentials{Token: signedToken(t, &past), Email: "ana@softpan.test"}))

		s := NewStore(storage, withClock(clock))
		require.NoError(t, s.Hydrate())
		assert.False(t, s.IsAuthenticated())

		stored, err := storage.Load()
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("keeps token without expiry claim", func(t *testing.T) {
		storage := NewMemoryStorage()
		require.NoError(t, storage.Save(&Credentials{Token: signedToken(t, nil)}))

		s := NewStore(storage, withClock(clock))
		require.NoError(t, s.Hydrate())
		assert.True(t, s.IsAuthenticated())
	})

	t.Run("keeps opaque non-JWT token", func(t *testing.T) {
		storage := NewMemoryStorage()
		require.NoError(t, storage.Save(&Credentials{Token: "opaque-token"}))

		s := NewStore(storage, withClock(clock))
		require.NoError(t, s.Hydrate())
		assert.True(t, s.IsAuthenticated())
	})

	t.Run("no persisted session is a no-op", func(t *testing.T) {
		s := NewStore(NewMemoryStorage())
		require.NoError(t, s.Hydrate())
		assert.False(t, s.IsAuthenticated())
	})
}

func TestFileStorage(t *testing.T) {
	t.Run("round-trips credentials", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "session.json")
		storage := NewFileStorage(path)

		require.NoError(t, storage.Save(&Credentials{Token: "tok", Email: "a@b.c", Roles: []string{"Vendedor"}}))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		creds, err := storage.Load()
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, "a@b.c", creds.Email)
		assert.Equal(t, []string{"Vendedor"}, creds.Roles)
	})

	t.Run("missing file loads as nil", func(t *testing.T) {
		storage := NewFileStorage(filepath.Join(t.TempDir(), "absent.json"))
		creds, err := storage.Load()
		require.NoError(t, err)
		assert.Nil(t, creds)
	})

	t.Run("corrupt file loads as nil", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

		creds, err := NewFileStorage(path).Load()
		require.NoError(t, err)
		assert.Nil(t, creds)
	})

	t.Run("Clear removes the file and tolerates absence", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		storage := NewFileStorage(path)
		require.NoError(t, storage.Save(&Credentials{Token: "tok"}))
		require.NoError(t, storage.Clear())
		require.NoError(t, storage.Clear())

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}
