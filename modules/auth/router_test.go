package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guideshare/guideshare/modules/auth"
	"github.com/guideshare/guideshare/pkg/cookie"
	"github.com/guideshare/guideshare/pkg/session"
	"github.com/guideshare/guideshare/pkg/token"
)

func setupHandler(t *testing.T) (http.Handler, *fakeUserStore, *token.Codec) {
	t.Helper()

	codec, err := token.New("auth-secret")
	require.NoError(t, err)

	store := &fakeUserStore{users: make(map[string]auth.User)}
	svc := auth.NewService(store, codec, auth.WithBcryptCost(bcrypt.MinCost))
	sessions := session.New(codec, cookie.New(), session.DefaultConfig())

	return auth.NewHandler(svc, sessions, nil).Router(), store, codec
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	handler, store, codec := setupHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	store.users["alice"] = auth.User{ID: 1, Username: "alice", PasswordHash: hash}

	t.Run("sets session cookie on success", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"alice","password":"hunter2"}`))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		c := sessionCookie(t, w)
		require.NotNil(t, c)
		assert.True(t, c.HttpOnly)

		claims := codec.Verify(c.Value)
		require.NotNil(t, claims)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("rejects bad credentials without a cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"alice","password":"wrong"}`))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, sessionCookie(t, w))
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	handler, _, codec := setupHandler(t)

	t.Run("creates account and session", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/register",
			strings.NewReader(`{"username":"bob","password":"s3cret"}`))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusCreated, w.Code)

		c := sessionCookie(t, w)
		require.NotNil(t, c)
		require.NotNil(t, codec.Verify(c.Value))
	})

	t.Run("conflict on duplicate username", func(t *testing.T) {
		body := `{"username":"carol","password":"pw"}`

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("requires username and password", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/register",
			strings.NewReader(`{"username":"","password":""}`))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Parallel()

	handler, _, _ := setupHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)

	c := sessionCookie(t, w)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
