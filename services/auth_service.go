package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bookstore/apperror"
	"bookstore/database"
	"bookstore/models"
	"bookstore/utils"
)

// ErrRevokedToken is returned by Authenticate for a logged-out token.
var ErrRevokedToken = errors.New("token has been revoked")

type LoginResult struct {
	Token  string
	Claims *utils.Claims
	User   models.PublicUser
}

type AuthService struct {
	users   UserStore
	hasher  *utils.PasswordHasher
	tokens  *utils.TokenService
	revoked RevocationStore
	log     *zap.SugaredLogger
}

// NewAuthService wires the admin login flow. revoked may be nil, in which
// case tokens stay valid until they expire.
func NewAuthService(users UserStore, hasher *utils.PasswordHasher, tokens *utils.TokenService, revoked RevocationStore, log *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, revoked: revoked, log: log}
}

// Login looks the user up by exact username, checks the password against
// the stored hash and issues a one hour token. Attempts are independent;
// there is no lockout.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperror.NewValidation("username and password are required", nil)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperror.NewUserNotFound("Admin not found")
	}
	if err != nil {
		return nil, apperror.NewInternal("An error occurred while logging in admin", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperror.NewInvalidCredentials("Invalid password")
	}

	token, claims, err := s.tokens.Issue(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return nil, apperror.NewInternal("An error occurred while logging in admin", err)
	}
	return &LoginResult{Token: token, Claims: claims, User: user.Public()}, nil
}

// Authenticate verifies a bearer token and, when a revocation store is
// configured, rejects tokens that were logged out.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*utils.Claims, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	if s.revoked == nil || claims.ID == "" {
		return claims, nil
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		// fail open on lookup errors
		s.log.Warnw("revocation lookup failed", "jti", claims.ID, "error", err)
		return claims, nil
	}
	if revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if s.revoked == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperror.NewInternal("Failed to revoke token", err)
	}
	return nil
}
