package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/services/servicetest"
	"bookstore/utils"
)

func newAuthFixture(t *testing.T) (*AuthService, *servicetest.RevocationStore, *utils.TokenService) {
	t.Helper()
	log := zap.NewNop().Sugar()
	users := servicetest.NewUserStore()
	hasher := utils.NewPasswordHasher()
	_, err := NewUserService(users, hasher, log).Register(context.Background(), "admin", "secret", models.RoleAdmin)
	require.NoError(t, err)

	tokens := utils.NewTokenService("test-secret")
	revoked := servicetest.NewRevocationStore()
	return NewAuthService(users, hasher, tokens, revoked, log), revoked, tokens
}

func TestLoginSuccess(t *testing.T) {
	svc, _, tokens := newAuthFixture(t)

	res, err := svc.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.PublicUser{Username: "admin", Role: models.RoleAdmin}, res.User)

	claims, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Len(t, claims.UserID, 24)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "admin", "wrong")
	assert.Nil(t, res)
	assert.True(t, apperror.Is(err, apperror.InvalidCredentialsError))

	res, err = svc.Login(ctx, "nobody", "secret")
	assert.Nil(t, res)
	assert.True(t, apperror.Is(err, apperror.UserNotFoundError))

	_, err = svc.Login(ctx, "Admin", "secret")
	assert.True(t, apperror.Is(err, apperror.UserNotFoundError), "username match is exact")

	_, err = svc.Login(ctx, "", "")
	assert.True(t, apperror.Is(err, apperror.ValidationError))
}

func TestLoginStoreFailure(t *testing.T) {
	users := servicetest.NewUserStore()
	users.Err = errors.New("connection reset")
	svc := NewAuthService(users, utils.NewPasswordHasher(), utils.NewTokenService("k"), nil, zap.NewNop().Sugar())

	_, err := svc.Login(context.Background(), "admin", "secret")
	assert.True(t, apperror.Is(err, apperror.InternalError))
}

func TestAuthenticateAndLogout(t *testing.T) {
	svc, revoked, _ := newAuthFixture(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	claims, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrRevokedToken)

	// a fresh login is unaffected
	again, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, again.Token)
	assert.NoError(t, err)

	revoked.Err = errors.New("redis down")
	_, err = svc.Authenticate(ctx, again.Token)
	assert.NoError(t, err)
}

func TestAuthenticateTokenErrors(t *testing.T) {
	svc, _, tokens := newAuthFixture(t)
	ctx := context.Background()

	past := tokens.WithClock(func() time.Time { return time.Now().Add(-90 * time.Minute) })
	expired, _, err := past.Issue("1", "admin", models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, utils.ErrExpiredToken)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestLogoutWithoutRevocationStore(t *testing.T) {
	svc := NewAuthService(servicetest.NewUserStore(), utils.NewPasswordHasher(), utils.NewTokenService("k"), nil, zap.NewNop().Sugar())
	_, claims, err := utils.NewTokenService("k").Issue("1", "admin", models.RoleAdmin)
	require.NoError(t, err)
	assert.NoError(t, svc.Logout(context.Background(), claims))
}
