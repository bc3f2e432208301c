package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianlink/portal/internal/core/domain"
)

// testUserRepo connects to PORTAL_TEST_MONGO_URI and creates a throwaway
// database; the test is skipped when the variable is unset.
func testUserRepo(t *testing.T) *UserRepository {
	t.Helper()
	uri := os.Getenv("PORTAL_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PORTAL_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "portal_test_" + uuid.NewString()[:8]})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	require.NoError(t, EnsureIndexes(ctx, db))
	return NewUserRepository(db)
}

func TestUserRepository_Integration(t *testing.T) {
	repo := testUserRepo(t)
	ctx := context.Background()

	u, err := repo.Create(ctx, &domain.User{
		Email:       "a@example.com",
		Phone:       "+919876543210",
		Roles:       domain.RolesFor(false),
		IsActive:    true,
		Preferences: domain.DefaultPreferences(),
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Email: "a@example.com", Phone: "+911111111111"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	_, err = repo.Create(ctx, &domain.User{Email: "b@example.com", Phone: "+919876543210"})
	assert.ErrorIs(t, err, domain.ErrPhoneExists)

	for want := 1; want <= 3; want++ {
		n, err := repo.IncrementLoginAttempts(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	until := time.Now().Add(30 * time.Minute).UTC().Truncate(time.Millisecond)
	require.NoError(t, repo.LockUntil(ctx, u.ID, until))
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LockedUntil)
	assert.True(t, got.LockedUntil.Equal(until))

	require.NoError(t, repo.ResetLoginAttempts(ctx, u.ID))
	got, err = repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, got.LoginAttempts)
	assert.Nil(t, got.LockedUntil)

	dark := true
	prefs, err := repo.UpdatePreferences(ctx, u.ID, domain.PreferencesPatch{DarkMode: &dark})
	require.NoError(t, err)
	assert.Equal(t, domain.Preferences{DarkMode: true, Language: "en", TextSize: domain.TextSizeMedium}, prefs)

	lang := "hi"
	prefs, err = repo.UpdatePreferences(ctx, u.ID, domain.PreferencesPatch{Language: &lang})
	require.NoError(t, err)
	assert.True(t, prefs.DarkMode, "patching language must keep dark_mode")
	assert.Equal(t, "hi", prefs.Language)

	_, err = repo.UpdatePreferences(ctx, "000000000000000000000000", domain.PreferencesPatch{Language: &lang})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
