package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("Jane Doe", "jane@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "secret1", user.Password)
		assert.Empty(t, user.HashedPassword)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("email is normalized", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("Jane Doe", "  Jane@Example.COM ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("name is trimmed", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("  Jane Doe  ", "jane@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.Name)
	})
}

func TestNewUserValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		userName   string
		email      string
		password   string
		wantField  string
		wantTarget error
	}{
		{
			name:       "name too short",
			userName:   "J",
			email:      "jane@example.com",
			password:   "secret1",
			wantField:  "name",
			wantTarget: domain.ErrValidation,
		},
		{
			name:       "name too long",
			userName:   strings.Repeat("a", 101),
			email:      "jane@example.com",
			password:   "secret1",
			wantField:  "name",
			wantTarget: domain.ErrValidation,
		},
		{
			name:       "empty email",
			userName:   "Jane Doe",
			email:      "",
			password:   "secret1",
			wantField:  "email",
			wantTarget: domain.ErrInvalidEmail,
		},
		{
			name:       "email without at sign",
			userName:   "Jane Doe",
			email:      "jane.example.com",
			password:   "secret1",
			wantField:  "email",
			wantTarget: domain.ErrInvalidEmail,
		},
		{
			name:       "email with two at signs",
			userName:   "Jane Doe",
			email:      "jane@foo@example.com",
			password:   "secret1",
			wantField:  "email",
			wantTarget: domain.ErrInvalidEmail,
		},
		{
			name:       "email without domain dot",
			userName:   "Jane Doe",
			email:      "jane@example",
			password:   "secret1",
			wantField:  "email",
			wantTarget: domain.ErrInvalidEmail,
		},
		{
			name:       "password too short",
			userName:   "Jane Doe",
			email:      "jane@example.com",
			password:   "12345",
			wantField:  "password",
			wantTarget: domain.ErrInvalidPassword,
		},
		{
			name:       "password over bcrypt limit",
			userName:   "Jane Doe",
			email:      "jane@example.com",
			password:   strings.Repeat("x", 73),
			wantField:  "password",
			wantTarget: domain.ErrInvalidPassword,
		},
		{
			name:       "empty password",
			userName:   "Jane Doe",
			email:      "jane@example.com",
			password:   "",
			wantField:  "password",
			wantTarget: domain.ErrInvalidPassword,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			user, err := domain.NewUser(tc.userName, tc.email, tc.password)
			require.Error(t, err)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tc.wantTarget)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.wantField, vErr.Field)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from the store has a hash but no plaintext password.
	user := &domain.User{
		ID:             1,
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"jane@example.com", "jane@example.com"},
		{"Jane@Example.COM", "jane@example.com"},
		{"  jane@example.com\t", "jane@example.com"},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, domain.NormalizeEmail(tc.in))
	}
}
