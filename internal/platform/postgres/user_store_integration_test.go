package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/postgres"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
	"github.com/tasktrack/tasktrack-api/internal/testdb"
)

func newUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Jane Doe", email, "secret1")
	require.NoError(t, err)
	return user
}

func TestUserStoreIntegration(t *testing.T) {
	db := testdb.Open(t)
	testdb.Reset(t, db)

	ctx := context.Background()
	verifier := auth.NewBcryptVerifier()
	userStore := postgres.NewUserStore(db, verifier, nil)

	t.Run("create assigns ID and hashes password", func(t *testing.T) {
		user := newUser(t, "create@example.com")
		require.NoError(t, userStore.Create(ctx, user))

		assert.Positive(t, user.ID)
		assert.Empty(t, user.Password, "plaintext must be cleared after hashing")
		require.NotEmpty(t, user.HashedPassword)
		assert.NoError(t, verifier.Compare(user.HashedPassword, "secret1"))
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		first := newUser(t, "dupe@example.com")
		require.NoError(t, userStore.Create(ctx, first))

		second := newUser(t, "DUPE@example.com")
		err := userStore.Create(ctx, second)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("get by email is case-insensitive", func(t *testing.T) {
		created := newUser(t, "lookup@example.com")
		require.NoError(t, userStore.Create(ctx, created))

		found, err := userStore.GetByEmail(ctx, "LOOKUP@Example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "lookup@example.com", found.Email)
	})

	t.Run("get by ID", func(t *testing.T) {
		created := newUser(t, "byid@example.com")
		require.NoError(t, userStore.Create(ctx, created))

		found, err := userStore.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, found.Email)

		_, err = userStore.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("delete cascades to tasks", func(t *testing.T) {
		user := newUser(t, "cascade@example.com")
		require.NoError(t, userStore.Create(ctx, user))

		taskStore := postgres.NewTaskStore(db, nil)
		task, err := domain.NewTask(user.ID, "Orphan me", "", domain.PriorityLow,
			mustDate(t, "2026-01-01"))
		require.NoError(t, err)
		require.NoError(t, taskStore.Create(ctx, task))

		require.NoError(t, userStore.Delete(ctx, user.ID))

		_, err = userStore.GetByID(ctx, user.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		_, err = taskStore.GetByID(ctx, user.ID, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		assert.ErrorIs(t, userStore.Delete(ctx, user.ID), store.ErrUserNotFound)
	})
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}
