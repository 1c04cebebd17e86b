package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/repository"
	"github.com/iliyamo/job-portal/internal/utils"
)

// MinPasswordLength applies to registration and password changes.
const MinPasswordLength = 6

// emailRule accepts bare addresses only; display-name forms such as
// "Alice <alice@example.com>" are rejected.
var emailRule = validator.New()

// AuthConfig carries the token and hashing settings of AuthService.
type AuthConfig struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

// AuthService registers and logs in users, verifies bearer tokens and
// maintains the revocation ledger.
type AuthService struct {
	users  UserStore
	tokens TokenStore
	cfg    AuthConfig
	log    *logrus.Logger
	now    func() time.Time
}

func NewAuthService(users UserStore, tokens TokenStore, cfg AuthConfig, log *logrus.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	return &AuthService{users: users, tokens: tokens, cfg: cfg, log: orDiscard(log), now: time.Now}
}

// WithClock replaces the time source; tests use it to expire tokens.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// RegisterInput is the payload of a registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// LoginResult is a successful login.
type LoginResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a seeker or employer account.  Admin accounts are
// provisioned out of band and cannot self-register.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	const op = "AuthService.Register"

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, utils.InvalidInput(op, "All fields are required.")
	}
	if err := emailRule.Var(in.Email, "email"); err != nil {
		return nil, utils.InvalidInput(op, "Email address is invalid")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, utils.InvalidInput(op, "Password must be at least 6 characters")
	}
	if in.Role != model.RoleSeeker && in.Role != model.RoleEmployer {
		return nil, utils.InvalidInput(op, "Role must be seeker or employer")
	}

	hash, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, utils.Internal(op, "failed to hash password", err)
	}
	u := &model.User{Name: in.Name, Email: in.Email, PasswordHash: hash, Role: in.Role}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, utils.E(utils.CodeConflict, op, "Email already in use", err)
		}
		return nil, utils.Internal(op, "failed to create user", err)
	}
	// Re-read so the caller gets the stored timestamps.
	stored, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return nil, utils.Internal(op, "failed to load user", err)
	}
	s.log.WithFields(logrus.Fields{"op": op, "user_id": stored.ID, "role": stored.Role}).Info("user registered")
	return stored, nil
}

// Login checks credentials and issues an access token.  Unknown email
// and wrong password yield the same message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "AuthService.Login"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.InvalidInput(op, "Email and password are required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, utils.Unauthenticated(op, "Invalid email or password")
		}
		return nil, utils.Internal(op, "failed to load user", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, utils.Unauthenticated(op, "Invalid email or password")
	}
	if u.Banned {
		return nil, utils.Forbidden(op, "Your account has been banned")
	}

	tok, err := utils.NewAccessToken(s.cfg.Secret, model.Identity{ID: u.ID, Email: u.Email, Role: u.Role}, s.cfg.TokenTTL, s.now())
	if err != nil {
		return nil, utils.Internal(op, "failed to sign token", err)
	}
	return &LoginResult{User: u, Token: tok.Token, ExpiresAt: tok.Exp}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(prefix):])
	return raw, raw != ""
}

// Authenticate verifies an Authorization header and returns the
// caller's identity.  Checks run in order: header shape, signature and
// expiry, revocation.
func (s *AuthService) Authenticate(ctx context.Context, header string) (model.Identity, error) {
	const op = "AuthService.Authenticate"

	raw, ok := BearerToken(header)
	if !ok {
		return model.Identity{}, utils.Unauthenticated(op, "no token")
	}
	claims, err := utils.ParseAccessToken(s.cfg.Secret, raw, s.now())
	if err != nil {
		return model.Identity{}, utils.E(utils.CodeUnauthenticated, op, "invalid or expired token", err)
	}
	revoked, err := s.tokens.IsRevoked(ctx, raw)
	if err != nil {
		return model.Identity{}, utils.Internal(op, "failed to check token", err)
	}
	if revoked {
		return model.Identity{}, utils.Unauthenticated(op, "token revoked")
	}
	return claims.Identity(), nil
}

// Logout records raw in the revocation ledger until its own expiry,
// or for DefaultRevocationTTL when it carries none.  Revoking the same
// token twice succeeds.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	const op = "AuthService.Logout"

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return utils.InvalidInput(op, "no token")
	}
	now := s.now()
	claims, err := utils.ParseAccessToken(s.cfg.Secret, raw, now)
	if err != nil {
		claims, _ = utils.PeekClaims(raw)
	}
	if err := s.tokens.Revoke(ctx, raw, utils.RevocationExpiry(claims, now)); err != nil {
		return utils.Internal(op, "failed to revoke token", err)
	}
	return nil
}

// ChangePassword replaces the caller's password after checking the
// old one.  The target account is always the caller's own.
func (s *AuthService) ChangePassword(ctx context.Context, id model.Identity, oldPassword, newPassword string) error {
	const op = "AuthService.ChangePassword"

	if id.ID == 0 {
		return utils.Unauthenticated(op, "authentication required")
	}
	if oldPassword == "" || newPassword == "" {
		return utils.InvalidInput(op, "Old and new passwords are required")
	}
	if len(newPassword) < MinPasswordLength {
		return utils.InvalidInput(op, "Password must be at least 6 characters")
	}
	u, err := s.users.GetByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.NotFound(op, "User not found")
		}
		return utils.Internal(op, "failed to load user", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, oldPassword) {
		return utils.InvalidInput(op, "Old password is incorrect")
	}
	hash, err := utils.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return utils.Internal(op, "failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return utils.Internal(op, "failed to update password", err)
	}
	return nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, id model.Identity) (*model.User, error) {
	const op = "AuthService.Me"

	u, err := s.users.GetByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, utils.NotFound(op, "User not found")
		}
		return nil, utils.Internal(op, "failed to load user", err)
	}
	return u, nil
}
