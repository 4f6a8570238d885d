package service

import (
	"context"
	"testing"

	"itemshare-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user", func(t *testing.T) {
		env := newTestEnv(t)
		u, err := env.users.Create(ctx, CreateUserInput{Name: "alice", Email: "alice@example.com"})
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		env := newTestEnv(t)
		env.user(t, "alice", "alice@example.com")
		_, err := env.users.Create(ctx, CreateUserInput{Name: "bob", Email: "alice@example.com"})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("invalid payloads", func(t *testing.T) {
		env := newTestEnv(t)
		cases := []struct {
			name string
			in   CreateUserInput
		}{
			{"blank name", CreateUserInput{Name: " ", Email: "a@example.com"}},
			{"blank email", CreateUserInput{Name: "a", Email: ""}},
			{"email without at sign", CreateUserInput{Name: "a", Email: "not-an-email"}},
			{"email with trailing at sign", CreateUserInput{Name: "a", Email: "a@"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := env.users.Create(ctx, tc.in)
				assert.ErrorIs(t, err, apperr.ErrInvalidInput)
			})
		}
	})
}

func TestUserUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		env := newTestEnv(t)
		u := env.user(t, "alice", "alice@example.com")
		got, err := env.users.Update(ctx, u.ID, UpdateUserInput{Name: strPtr("alicia")})
		require.NoError(t, err)
		assert.Equal(t, "alicia", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("email taken by someone else", func(t *testing.T) {
		env := newTestEnv(t)
		env.user(t, "alice", "alice@example.com")
		bob := env.user(t, "bob", "bob@example.com")
		_, err := env.users.Update(ctx, bob.ID, UpdateUserInput{Email: strPtr("alice@example.com")})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("re-submitting own email is fine", func(t *testing.T) {
		env := newTestEnv(t)
		u := env.user(t, "alice", "alice@example.com")
		_, err := env.users.Update(ctx, u.ID, UpdateUserInput{Email: strPtr("alice@example.com")})
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.users.Update(ctx, 999, UpdateUserInput{Name: strPtr("ghost")})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestUserDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.user(t, "owner", "owner@example.com")
	item := env.item(t, owner.ID, "drill", true)

	require.NoError(t, env.users.Delete(ctx, owner.ID))

	t.Run("user is gone", func(t *testing.T) {
		_, err := env.users.GetByID(ctx, owner.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("owned items cascade", func(t *testing.T) {
		got, err := env.store.Items.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("deleting twice is not found", func(t *testing.T) {
		err := env.users.Delete(ctx, owner.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestUserList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.user(t, "alice", "alice@example.com")
	env.user(t, "bob", "bob@example.com")

	got, err := env.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
