package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

func TestRegisterLoginRoleRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, role := range []model.Role{model.RoleSeeker, model.RoleEmployer} {
		email := string(role) + "@example.com"
		_, err := f.auth.Register(ctx, service.RegisterInput{Name: "User", Email: email, Password: "secret1", Role: role})
		require.NoError(t, err)

		res, err := f.auth.Login(ctx, email, "secret1")
		require.NoError(t, err)

		claims, err := utils.ParseAccessToken(testSecret, res.Token, time.Now())
		require.NoError(t, err)
		assert.Equal(t, role, claims.Role)
		assert.Equal(t, res.User.ID, claims.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, service.RegisterInput{Email: "a@x.io", Password: "secret1", Role: model.RoleSeeker})
	requireCode(t, err, utils.CodeInvalidArgument)
	assert.Equal(t, "All fields are required.", utils.PublicMessage(err))

	_, err = f.auth.Register(ctx, service.RegisterInput{Name: "A", Email: "a@x.io", Password: "secret1", Role: model.RoleAdmin})
	requireCode(t, err, utils.CodeInvalidArgument)

	_, err = f.auth.Register(ctx, service.RegisterInput{Name: "A", Email: "a@x.io", Password: "123", Role: model.RoleSeeker})
	requireCode(t, err, utils.CodeInvalidArgument)
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", model.RoleSeeker)

	_, err := f.auth.Register(context.Background(), service.RegisterInput{
		Name: "Alice", Email: "ALICE@example.com", Password: "password1", Role: model.RoleEmployer,
	})
	requireCode(t, err, utils.CodeConflict)
	assert.Equal(t, "Email already in use", utils.PublicMessage(err))
}

func TestRegisterRejectsNonBareEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", model.RoleSeeker)

	for _, email := range []string{"Alice <alice@example.com>", "<alice@example.com>", "alice", "alice@"} {
		_, err := f.auth.Register(ctx, service.RegisterInput{
			Name: "Alice", Email: email, Password: "password1", Role: model.RoleSeeker,
		})
		requireCode(t, err, utils.CodeInvalidArgument)
		assert.Equal(t, "Email address is invalid", utils.PublicMessage(err), email)
	}

	users, err := f.db.Users().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice@example.com", users[0].Email)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "bob", model.RoleSeeker)

	_, err := f.auth.Login(ctx, "bob@example.com", "wrong-pass")
	requireCode(t, err, utils.CodeUnauthenticated)
	assert.Equal(t, "Invalid email or password", utils.PublicMessage(err))

	_, err = f.auth.Login(ctx, "nobody@example.com", "password1")
	requireCode(t, err, utils.CodeUnauthenticated)
	assert.Equal(t, "Invalid email or password", utils.PublicMessage(err))

	_, err = f.auth.Login(ctx, "", "")
	requireCode(t, err, utils.CodeInvalidArgument)
}

func TestBannedUserCannotLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.register(t, "bob", model.RoleSeeker)
	admin := f.adminIdentity(t)

	_, err := f.admin.BanUser(ctx, admin, bob.ID)
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "bob@example.com", "password1")
	requireCode(t, err, utils.CodeForbidden)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "carol", model.RoleEmployer)
	res, err := f.auth.Login(ctx, "carol@example.com", "password1")
	require.NoError(t, err)

	id, err := f.auth.Authenticate(ctx, "Bearer "+res.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployer, id.Role)
	assert.Equal(t, "carol@example.com", id.Email)

	cases := []struct {
		header string
		msg    string
	}{
		{"", "no token"},
		{"Token abc", "no token"},
		{"Bearer ", "no token"},
		{"Bearer not-a-jwt", "invalid or expired token"},
		{"Bearer " + forged(t), "invalid or expired token"},
	}
	for _, tc := range cases {
		_, err := f.auth.Authenticate(ctx, tc.header)
		requireCode(t, err, utils.CodeUnauthenticated)
		assert.Equal(t, tc.msg, utils.PublicMessage(err), "header %q", tc.header)
	}
}

func forged(t *testing.T) string {
	t.Helper()
	tok, err := utils.NewAccessToken("other-secret", model.Identity{ID: 1, Role: model.RoleAdmin}, time.Hour, time.Now())
	require.NoError(t, err)
	return tok.Token
}

func TestAuthenticateExpiredToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "dave", model.RoleSeeker)
	res, err := f.auth.Login(ctx, "dave@example.com", "password1")
	require.NoError(t, err)

	f.auth.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
	_, err = f.auth.Authenticate(ctx, "Bearer "+res.Token)
	requireCode(t, err, utils.CodeUnauthenticated)
	assert.Equal(t, "invalid or expired token", utils.PublicMessage(err))
}

func TestRevokedTokenAlwaysRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "erin", model.RoleSeeker)
	res, err := f.auth.Login(ctx, "erin@example.com", "password1")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, res.Token))
	// Revoking twice is harmless.
	require.NoError(t, f.auth.Logout(ctx, res.Token))

	for i := 0; i < 3; i++ {
		_, err = f.auth.Authenticate(ctx, "Bearer "+res.Token)
		requireCode(t, err, utils.CodeUnauthenticated)
		assert.Equal(t, "token revoked", utils.PublicMessage(err))
	}

	// A fresh login yields a distinct, valid token.
	again, err := f.auth.Login(ctx, "erin@example.com", "password1")
	require.NoError(t, err)
	assert.NotEqual(t, res.Token, again.Token)
	_, err = f.auth.Authenticate(ctx, "Bearer "+again.Token)
	assert.NoError(t, err)
}

func TestLogoutEmptyToken(t *testing.T) {
	f := newFixture(t)
	err := f.auth.Logout(context.Background(), "  ")
	requireCode(t, err, utils.CodeInvalidArgument)
	assert.Equal(t, "no token", utils.PublicMessage(err))
}

func TestAuthenticateLedgerFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "fred", model.RoleSeeker)
	res, err := f.auth.Login(ctx, "fred@example.com", "password1")
	require.NoError(t, err)

	f.db.FailWith(errors.New("connection refused"))
	_, err = f.auth.Authenticate(ctx, "Bearer "+res.Token)
	requireCode(t, err, utils.CodeInternal)
	assert.NotContains(t, utils.PublicMessage(err), "connection refused")

	f.db.FailWith(context.DeadlineExceeded)
	_, err = f.auth.Authenticate(ctx, "Bearer "+res.Token)
	requireCode(t, err, utils.CodeTimeout)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gina := f.register(t, "gina", model.RoleSeeker)

	err := f.auth.ChangePassword(ctx, gina, "wrong-old", "newpass1")
	requireCode(t, err, utils.CodeInvalidArgument)

	err = f.auth.ChangePassword(ctx, gina, "password1", "short")
	requireCode(t, err, utils.CodeInvalidArgument)

	require.NoError(t, f.auth.ChangePassword(ctx, gina, "password1", "newpass1"))
	_, err = f.auth.Login(ctx, "gina@example.com", "password1")
	requireCode(t, err, utils.CodeUnauthenticated)
	_, err = f.auth.Login(ctx, "gina@example.com", "newpass1")
	assert.NoError(t, err)
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	hank := f.register(t, "hank", model.RoleEmployer)

	u, err := f.auth.Me(context.Background(), hank)
	require.NoError(t, err)
	assert.Equal(t, "hank", u.Name)

	_, err = f.auth.Me(context.Background(), model.Identity{ID: 999, Role: model.RoleSeeker})
	requireCode(t, err, utils.CodeNotFound)
}

func TestTokenSweeperKeepsUnexpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tokens := f.db.Tokens()
	now := time.Now().UTC()
	require.NoError(t, tokens.Revoke(ctx, "old", now.Add(-time.Minute)))
	require.NoError(t, tokens.Revoke(ctx, "live", now.Add(time.Hour)))

	n, err := service.NewTokenSweeper(tokens, time.Hour, nil).SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	live, err := tokens.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, live)
	assert.Equal(t, 1, f.db.RevokedCount())
}

func TestTokenSweeperRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, f.db.Tokens().Revoke(ctx, "old", time.Now().Add(-time.Minute)))

	done := make(chan struct{})
	go func() {
		service.NewTokenSweeper(f.db.Tokens(), 10*time.Millisecond, nil).Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return f.db.RevokedCount() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
