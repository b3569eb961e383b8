package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushauth/internal/models"
)

type failingDenylist struct{}

func (failingDenylist) Revoke(context.Context, string, string, time.Time) error {
	return errors.New("denylist unavailable")
}

func (failingDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("denylist unavailable")
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, newMemoryDenylist())
	user := &models.User{ID: "usr_1"}

	first, err := svc.Issue(user)
	require.NoError(t, err)
	second, err := svc.Issue(user)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := svc.Validate(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", claims.UserID)
	assert.Equal(t, "usr_1", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	id := IdentityFromClaims(claims)
	assert.Equal(t, "usr_1", id.UserID)
	assert.Equal(t, claims.ID, id.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), id.ExpiresAt, 5*time.Second)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Minute, newMemoryDenylist())
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(&models.User{ID: "usr_1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("another-secret-another-secret-another", time.Hour, newMemoryDenylist())
	token, err := issuer.Issue(&models.User{ID: "usr_1"})
	require.NoError(t, err)

	svc := NewJWTService(testSecret, time.Hour, newMemoryDenylist())
	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = svc.Validate(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: "usr_1",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	svc := NewJWTService(testSecret, time.Hour, newMemoryDenylist())
	_, err = svc.Validate(context.Background(), token)
	assert.Error(t, err)
}

func TestJWTService_Invalidate(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(testSecret, time.Hour, newMemoryDenylist())
	user := &models.User{ID: "usr_1"}

	revokedToken, err := svc.Issue(user)
	require.NoError(t, err)
	otherToken, err := svc.Issue(user)
	require.NoError(t, err)

	claims, err := svc.Validate(ctx, revokedToken)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx, IdentityFromClaims(claims)))
	require.NoError(t, svc.Invalidate(ctx, IdentityFromClaims(claims)))

	_, err = svc.Validate(ctx, revokedToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = svc.Validate(ctx, otherToken)
	assert.NoError(t, err)
}

func TestJWTService_DenylistFailure(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, failingDenylist{})
	token, err := svc.Issue(&models.User{ID: "usr_1"})
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), token)
	require.ErrorIs(t, err, ErrDenylistUnavailable)
	assert.NotErrorIs(t, err, ErrTokenRevoked)

	assert.Error(t, svc.Invalidate(context.Background(), Identity{UserID: "usr_1", TokenID: "jti"}))
}
