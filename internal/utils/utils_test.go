package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/job-portal/internal/model"
)

func TestSkillsRoundTrip(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, SplitSkills("Go, ,SQL"))
	assert.Equal(t, []string{}, SplitSkills(""))
	assert.Equal(t, "Go, SQL, Docker", JoinSkills([]string{" Go", "SQL ", "", "Docker"}))

	in := []string{"Go", "Kubernetes", "SQL"}
	assert.Equal(t, in, SplitSkills(JoinSkills(in)))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	id := model.Identity{ID: 7, Email: "a@b.io", Role: model.RoleEmployer}

	tok, err := NewAccessToken("s3cret", id, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), tok.Exp)

	claims, err := ParseAccessToken("s3cret", tok.Token, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
	assert.NotEmpty(t, claims.RegisteredClaims.ID)

	_, err = ParseAccessToken("other", tok.Token, now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccessToken("s3cret", tok.Token, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidToken)

	again, err := NewAccessToken("s3cret", id, time.Hour, now)
	require.NoError(t, err)
	assert.NotEqual(t, tok.Token, again.Token)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{ID: 1, Role: model.RoleAdmin}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccessToken("s3cret", raw, time.Now())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWithoutExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: 3, Role: model.RoleSeeker}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = ParseAccessToken("k", raw, now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := PeekClaims(raw)
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultRevocationTTL), RevocationExpiry(claims, now))

	tok, err := NewAccessToken("k", model.Identity{ID: 3, Role: model.RoleSeeker}, 30*time.Minute, now)
	require.NoError(t, err)
	peeked, err := PeekClaims(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, tok.Exp, RevocationExpiry(peeked, now))

	_, err = PeekClaims("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{InvalidInput("op", "bad"), http.StatusBadRequest, "bad"},
		{Unauthenticated("op", "no token"), http.StatusUnauthorized, "no token"},
		{Forbidden("op", "nope"), http.StatusForbidden, "nope"},
		{NotFound("op", "Job not found"), http.StatusNotFound, "Job not found"},
		{Conflict("op", "dup"), http.StatusConflict, "dup"},
		{Internal("op", "failed to load", errors.New("dial tcp: refused")), http.StatusInternalServerError, "failed to load"},
		{Internal("op", "failed to load", context.DeadlineExceeded), http.StatusGatewayTimeout, "request timed out"},
		{errors.New("raw"), http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), tc.err.Error())
		assert.Equal(t, tc.msg, PublicMessage(tc.err))
	}

	wrapped := fmt.Errorf("handler: %w", NotFound("op", "gone"))
	assert.True(t, IsCode(wrapped, CodeNotFound))

	cause := errors.New("boom")
	assert.ErrorIs(t, Internal("op", "x", cause), cause)
}
