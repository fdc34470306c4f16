package auth

import (
	"testing"
	"time"

	"destined_affinity/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService(testSecret, 365*24*time.Hour, "destined-affinity")

	token, expiresAt, err := svc.Issue("  A@X.com ", models.MemberRoleMember)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(365*24*time.Hour), expiresAt, time.Minute)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.Equal(t, models.MemberRoleMember, identity.Role)
}

func TestTokenService_ValidForAYear(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, 365*24*time.Hour, "destined-affinity").
		WithClock(func() time.Time { return issuedAt })

	token, _, err := svc.Issue("a@x.com", models.MemberRoleMember)
	require.NoError(t, err)

	almostYear := svc.WithClock(func() time.Time { return issuedAt.Add(364 * 24 * time.Hour) })
	_, err = almostYear.Verify(token)
	assert.NoError(t, err)

	afterYear := svc.WithClock(func() time.Time { return issuedAt.Add(366 * 24 * time.Hour) })
	_, err = afterYear.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, "destined-affinity")

	t.Run("missing", func(t *testing.T) {
		_, err := svc.Verify("   ")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("another-secret", time.Hour, "destined-affinity")
		token, _, err := other.Issue("a@x.com", models.MemberRoleAdmin)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenService(testSecret, time.Hour, "someone-else")
		token, _, err := other.Issue("a@x.com", models.MemberRoleMember)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := Claims{
			Email: "a@x.com",
			Role:  models.MemberRoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "destined-affinity",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		claims := Claims{
			Email:            "a@x.com",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "destined-affinity"},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
