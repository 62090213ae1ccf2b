package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guideshare/guideshare/pkg/token"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("with secret", func(t *testing.T) {
		codec, err := token.New("s3cret")
		require.NoError(t, err)
		require.NotNil(t, codec)
	})

	t.Run("without secret", func(t *testing.T) {
		codec, err := token.New("")
		require.ErrorIs(t, err, token.ErrNoSecret)
		require.Nil(t, codec)
	})
}

func TestSign(t *testing.T) {
	t.Parallel()

	codec, err := token.New("s3cret")
	require.NoError(t, err)

	t.Run("produces three dot-separated segments", func(t *testing.T) {
		signed, err := codec.Sign(token.Claims{UserID: 123})
		require.NoError(t, err)
		assert.Len(t, strings.Split(signed, "."), 3)
	})

	t.Run("sets issued-at and expiry", func(t *testing.T) {
		now := time.Now()
		signed, err := codec.Sign(token.Claims{UserID: 123})
		require.NoError(t, err)

		claims, err := codec.Parse(signed)
		require.NoError(t, err)
		assert.InDelta(t, now.Unix(), claims.IssuedAt, 2)
		assert.InDelta(t, now.Add(token.DefaultTTL).Unix(), claims.ExpiresAt, 2)
	})

	t.Run("overwrites caller-supplied timestamps", func(t *testing.T) {
		signed, err := codec.Sign(token.Claims{UserID: 1, ExpiresAt: 42})
		require.NoError(t, err)

		claims, err := codec.Parse(signed)
		require.NoError(t, err)
		assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	codec, err := token.New("s3cret")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		signed, err := codec.Sign(token.Claims{UserID: 123, Username: "alice", IsAdmin: true})
		require.NoError(t, err)

		claims := codec.Verify(signed)
		require.NotNil(t, claims)
		assert.Equal(t, int64(123), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other, err := token.New("secretB")
		require.NoError(t, err)

		signed, err := other.Sign(token.Claims{UserID: 123})
		require.NoError(t, err)

		assert.Nil(t, codec.Verify(signed))
	})

	t.Run("rejects expired token", func(t *testing.T) {
		past := time.Now().Add(-48 * time.Hour)
		stale, err := token.New("s3cret", token.WithClock(func() time.Time { return past }))
		require.NoError(t, err)

		signed, err := stale.Sign(token.Claims{UserID: 123})
		require.NoError(t, err)

		// The signature is genuine; only the expiry fails.
		assert.Nil(t, codec.Verify(signed))
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		assert.Nil(t, codec.Verify("not.a.validtoken"))
		assert.Nil(t, codec.Verify("onlyonepart"))
		assert.Nil(t, codec.Verify(""))
	})

	t.Run("rejects tampered claims", func(t *testing.T) {
		signed, err := codec.Sign(token.Claims{UserID: 123})
		require.NoError(t, err)

		parts := strings.Split(signed, ".")
		forged := parts[0] + ".eyJpZCI6OTk5fQ." + parts[2]
		assert.Nil(t, codec.Verify(forged))
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	codec, err := token.New("s3cret")
	require.NoError(t, err)

	t.Run("expired token yields ErrExpiredToken", func(t *testing.T) {
		past := time.Now().Add(-48 * time.Hour)
		stale, err := token.New("s3cret", token.WithClock(func() time.Time { return past }))
		require.NoError(t, err)

		signed, err := stale.Sign(token.Claims{UserID: 1})
		require.NoError(t, err)

		_, err = codec.Parse(signed)
		require.ErrorIs(t, err, token.ErrExpiredToken)
	})

	t.Run("wrong part count yields ErrMalformedToken", func(t *testing.T) {
		_, err := codec.Parse("a.b")
		require.ErrorIs(t, err, token.ErrMalformedToken)
	})

	t.Run("tampered signature yields ErrInvalidSignature", func(t *testing.T) {
		signed, err := codec.Sign(token.Claims{UserID: 1})
		require.NoError(t, err)

		_, err = codec.Parse(signed + "x")
		require.ErrorIs(t, err, token.ErrInvalidSignature)
	})
}
