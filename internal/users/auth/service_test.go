// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package auth_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/internal/users/auth"
	"github.com/narkhlab/narkh/pkg/pointer"
)

// # Test Doubles

// fakeUserRepo is an in-memory UserRepository keyed by account id.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*auth.User)}
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) List(_ context.Context, filter auth.Filter, limit, offset int) ([]*auth.User, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	matched := make([]*auth.User, 0, len(repo.users))
	for _, user := range repo.users {
		if filter.Role != "" && string(user.Role) != filter.Role {
			continue
		}
		if filter.ActiveOnly && !user.IsActive {
			continue
		}
		copied := *user
		matched = append(matched, &copied)
	}
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (repo *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	user.UpdatedAt = time.Now()
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

// FindPrincipal mirrors the production repository: deactivated and missing
// accounts are both unresolvable.
func (repo *fakeUserRepo) FindPrincipal(_ context.Context, userID string) (*sec.Principal, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.users[userID]
	if !ok || !user.IsActive {
		return nil, apperr.NotFound("User")
	}
	return user.Principal(), nil
}

// fakeResetGuard records consumed reset-token digests in memory.
type fakeResetGuard struct {
	mu       sync.Mutex
	consumed map[string]bool
}

func newFakeResetGuard() *fakeResetGuard {
	return &fakeResetGuard{consumed: make(map[string]bool)}
}

func (guard *fakeResetGuard) Consume(_ context.Context, tokenDigest string, _ time.Duration) (bool, error) {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.consumed[tokenDigest] {
		return true, nil
	}
	guard.consumed[tokenDigest] = true
	return false, nil
}

// # Fixtures

type testEnv struct {
	repo    *fakeUserRepo
	guard   *fakeResetGuard
	tokens  *sec.TokenService
	service *auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "narkh.app")
	require.NoError(t, err)

	repo := newFakeUserRepo()
	guard := newFakeResetGuard()

	return &testEnv{
		repo:    repo,
		guard:   guard,
		tokens:  tokens,
		service: auth.NewService(repo, guard, tokens),
	}
}

// seedUser registers an account through the service so the stored hash is real.
func (env *testEnv) seedUser(t *testing.T, email, password string) *auth.User {
	t.Helper()
	session, err := env.service.Register(context.Background(), auth.RegisterInput{
		Email:    email,
		FullName: "Test Account",
		Password: password,
	})
	require.NoError(t, err)
	return session.User
}

// # Registration

/*
TestService_Register creates an account with the base role and a live session.
*/
func TestService_Register(t *testing.T) {
	env := newTestEnv(t)

	session, err := env.service.Register(context.Background(), auth.RegisterInput{
		Email:    "new@narkh.app",
		FullName: "New Account",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUser, session.User.Role)
	assert.True(t, session.User.IsActive)
	assert.NotEqual(t, "secret-pass", session.User.PasswordHash)

	// Both tokens must verify under their own purpose.
	accessClaims, err := env.tokens.Verify(session.AccessToken, sec.PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, accessClaims.UserID)

	refreshClaims, err := env.tokens.Verify(session.RefreshToken, sec.PurposeRefresh)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, refreshClaims.UserID)
}

/*
TestService_Register_DuplicateEmail rejects re-registration with a 409.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "taken@narkh.app", "secret-pass")

	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Email:    "taken@narkh.app",
		FullName: "Second Account",
		Password: "other-pass",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Login

/*
TestService_Login covers the uniform credential failure message.
*/
func TestService_Login(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "login@narkh.app", "secret-pass")

	t.Run("success", func(t *testing.T) {
		session, err := env.service.Login(context.Background(), auth.LoginInput{
			Email:    "login@narkh.app",
			Password: "secret-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, session.User.ID)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := env.service.Login(context.Background(), auth.LoginInput{
			Email:    "login@narkh.app",
			Password: "wrong-pass",
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", err.Error())
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := env.service.Login(context.Background(), auth.LoginInput{
			Email:    "ghost@narkh.app",
			Password: "secret-pass",
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", err.Error())
	})

	t.Run("deactivated_account", func(t *testing.T) {
		stored, err := env.repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		stored.IsActive = false
		require.NoError(t, env.repo.Update(context.Background(), stored))

		_, err = env.service.Login(context.Background(), auth.LoginInput{
			Email:    "login@narkh.app",
			Password: "secret-pass",
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", err.Error())
	})
}

// # Refresh

/*
TestService_Refresh mints a new access token from refresh claims alone.
*/
func TestService_Refresh(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "refresh@narkh.app", "secret-pass")

	session, err := env.service.Login(context.Background(), auth.LoginInput{
		Email:    "refresh@narkh.app",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	t.Run("valid_refresh_token", func(t *testing.T) {
		accessToken, err := env.service.Refresh(context.Background(), session.RefreshToken)
		require.NoError(t, err)

		claims, err := env.tokens.Verify(accessToken, sec.PurposeAccess)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, claims.UserID)
		assert.Equal(t, session.User.Email, claims.Email)
	})

	t.Run("access_token_rejected", func(t *testing.T) {
		// An access token must never work as a refresh token.
		_, err := env.service.Refresh(context.Background(), session.AccessToken)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("garbage_rejected", func(t *testing.T) {
		_, err := env.service.Refresh(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})
}

// # Password Recovery

/*
TestService_ResetPassword covers the full recovery flow including replay.
*/
func TestService_ResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "reset@narkh.app", "old-password")

	token, err := env.service.RequestPasswordReset(context.Background(), "reset@narkh.app")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("invalid_token", func(t *testing.T) {
		err := env.service.ResetPassword(context.Background(), "forged-token", "new-password")
		require.Error(t, err)
		assert.Equal(t, "Invalid token or server error", err.Error())
	})

	t.Run("wrong_purpose_token", func(t *testing.T) {
		session, err := env.service.Login(context.Background(), auth.LoginInput{
			Email:    "reset@narkh.app",
			Password: "old-password",
		})
		require.NoError(t, err)

		err = env.service.ResetPassword(context.Background(), session.AccessToken, "new-password")
		require.Error(t, err)
		assert.Equal(t, "Invalid token or server error", err.Error())
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, env.service.ResetPassword(context.Background(), token, "new-password"))

		_, err := env.service.Login(context.Background(), auth.LoginInput{
			Email:    "reset@narkh.app",
			Password: "old-password",
		})
		assert.Error(t, err)

		_, err = env.service.Login(context.Background(), auth.LoginInput{
			Email:    "reset@narkh.app",
			Password: "new-password",
		})
		assert.NoError(t, err)
	})

	t.Run("replay_blocked", func(t *testing.T) {
		err := env.service.ResetPassword(context.Background(), token, "third-password")
		require.Error(t, err)
		assert.Equal(t, "Invalid token or server error", err.Error())

		// The replay must not have changed the password again.
		_, err = env.service.Login(context.Background(), auth.LoginInput{
			Email:    "reset@narkh.app",
			Password: "new-password",
		})
		assert.NoError(t, err)
	})
}

/*
TestService_RequestPasswordReset_UnknownEmail returns no token and no error.
*/
func TestService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	token, err := env.service.RequestPasswordReset(context.Background(), "nobody@narkh.app")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

/*
TestService_ChangePassword requires the current password to match.
*/
func TestService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "change@narkh.app", "current-pass")

	err := env.service.ChangePassword(context.Background(), user.ID, "wrong-pass", "next-pass")
	require.Error(t, err)
	assert.Equal(t, "Current password is incorrect", err.Error())

	require.NoError(t, env.service.ChangePassword(context.Background(), user.ID, "current-pass", "next-pass"))

	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Email:    "change@narkh.app",
		Password: "next-pass",
	})
	assert.NoError(t, err)
}

// # Administrative Management

/*
TestService_UpdateUser covers role promotion and region assignment.
*/
func TestService_UpdateUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "admin-target@narkh.app", "secret-pass")

	t.Run("unknown_role_rejected", func(t *testing.T) {
		_, err := env.service.UpdateUser(context.Background(), user.ID, auth.AdminUpdateInput{Role: pointer.To("superuser")})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("promote_to_collector_with_market", func(t *testing.T) {
		marketID := "0191d7a8-0000-7000-8000-0000000000bb"
		updated, err := env.service.UpdateUser(context.Background(), user.ID, auth.AdminUpdateInput{
			Role:     pointer.To("collector"),
			MarketID: pointer.To(marketID),
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleCollector, updated.Role)
		require.NotNil(t, updated.MarketID)
		assert.Equal(t, marketID, *updated.MarketID)
	})

	t.Run("clear_market_assignment", func(t *testing.T) {
		updated, err := env.service.UpdateUser(context.Background(), user.ID, auth.AdminUpdateInput{MarketID: pointer.To("")})
		require.NoError(t, err)
		assert.Nil(t, updated.MarketID)
	})

	t.Run("deactivate", func(t *testing.T) {
		updated, err := env.service.UpdateUser(context.Background(), user.ID, auth.AdminUpdateInput{IsActive: pointer.To(false)})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})

	t.Run("missing_account", func(t *testing.T) {
		_, err := env.service.UpdateUser(context.Background(), "0191d7a8-dead-7000-8000-000000000000", auth.AdminUpdateInput{})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

/*
TestService_ListUsers validates the role filter against the enumeration.
*/
func TestService_ListUsers(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "one@narkh.app", "secret-pass")
	env.seedUser(t, "two@narkh.app", "secret-pass")

	users, total, err := env.service.ListUsers(context.Background(), auth.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, users, 2)

	_, _, err = env.service.ListUsers(context.Background(), auth.Filter{Role: "superuser"}, 10, 0)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
