package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret")

	token, err := v.Issue(42, "admin", time.Hour)
	require.NoError(t, err)

	claims, err := v.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret")

	expired, err := v.Issue(42, "worker", -time.Minute)
	require.NoError(t, err)
	_, err = v.Parse(expired)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	foreign, err := NewVerifier("other").Issue(42, "worker", time.Hour)
	require.NoError(t, err)
	_, err = v.Parse(foreign)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = v.Parse(noExp)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = v.Parse("not-a-jwt")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestClaims_UserID(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	assert.True(t, errors.Is(err, ErrInvalidSubject))

	c.Subject = "0"
	_, err = c.UserID()
	assert.True(t, errors.Is(err, ErrInvalidSubject))
}
