package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guideshare/guideshare/pkg/cookie"
	"github.com/guideshare/guideshare/pkg/session"
	"github.com/guideshare/guideshare/pkg/token"
)

func setupStore(t *testing.T, opts ...token.Option) (*session.Store, *token.Codec) {
	t.Helper()

	codec, err := token.New("test-secret", opts...)
	require.NoError(t, err)

	return session.New(codec, cookie.New(), session.DefaultConfig()), codec
}

func requestWithCookies(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestCreate(t *testing.T) {
	t.Parallel()

	store, codec := setupStore(t)

	signed, err := codec.Sign(token.Claims{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	store.Create(w, signed)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, signed, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("returns claims for a valid cookie", func(t *testing.T) {
		store, codec := setupStore(t)

		signed, err := codec.Sign(token.Claims{UserID: 42, Username: "bob"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		store.Create(w, signed)

		claims := store.Read(requestWithCookies(t, w))
		require.NotNil(t, claims)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "bob", claims.Username)
	})

	t.Run("nil without a cookie", func(t *testing.T) {
		store, _ := setupStore(t)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Nil(t, store.Read(r))
	})

	t.Run("nil for a forged cookie", func(t *testing.T) {
		store, _ := setupStore(t)

		other, err := token.New("another-secret")
		require.NoError(t, err)
		forged, err := other.Sign(token.Claims{UserID: 42})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: forged})

		assert.Nil(t, store.Read(r))
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	t.Run("reissues a token with a later expiry", func(t *testing.T) {
		store, codec := setupStore(t)

		// Issue the original token two hours ago so the reissued
		// expiry is observably later while the token is still valid.
		past := time.Now().Add(-2 * time.Hour)
		old, err := token.New("test-secret", token.WithClock(func() time.Time { return past }))
		require.NoError(t, err)

		signed, err := old.Sign(token.Claims{UserID: 7, Username: "carol"})
		require.NoError(t, err)
		original, err := codec.Parse(signed)
		require.NoError(t, err)

		w1 := httptest.NewRecorder()
		store.Create(w1, signed)
		r := requestWithCookies(t, w1)

		w2 := httptest.NewRecorder()
		claims := store.Refresh(w2, r)
		require.NotNil(t, claims)
		assert.Equal(t, int64(7), claims.UserID)

		cookies := w2.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "session", cookies[0].Name)
		assert.NotEqual(t, signed, cookies[0].Value)

		reissued := codec.Verify(cookies[0].Value)
		require.NotNil(t, reissued)
		assert.Equal(t, int64(7), reissued.UserID)
		assert.Greater(t, reissued.ExpiresAt, original.ExpiresAt)
	})

	t.Run("no cookie set when request has none", func(t *testing.T) {
		store, _ := setupStore(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Nil(t, store.Refresh(w, r))
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid cookie left alone", func(t *testing.T) {
		store, _ := setupStore(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "not.a.validtoken"})

		assert.Nil(t, store.Refresh(w, r))
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestDestroy(t *testing.T) {
	t.Parallel()

	store, _ := setupStore(t)

	w := httptest.NewRecorder()
	store.Destroy(w)
	store.Destroy(w) // idempotent

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, c := range cookies {
		assert.Empty(t, c.Value)
		assert.True(t, c.Expires.Before(time.Now()))
	}
}
