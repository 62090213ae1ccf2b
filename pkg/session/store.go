package session

import (
	"log/slog"
	"net/http"

	"github.com/guideshare/guideshare/pkg/cookie"
	"github.com/guideshare/guideshare/pkg/token"
)

// Store manages the session cookie lifecycle. It is stateless on the
// server side: the cookie value is a self-contained signed token and
// validity is recomputed from the token alone on every read.
type Store struct {
	codec   *token.Codec
	cookies *cookie.Manager
	cfg     Config
	log     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used when a refresh cannot re-sign a token.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a session store. The cookie manager carries the attribute
// defaults (httpOnly, path, Secure in production); the codec decides
// token validity.
func New(codec *token.Codec, cookies *cookie.Manager, cfg Config, opts ...Option) *Store {
	s := &Store{
		codec:   codec,
		cookies: cookies,
		cfg:     cfg,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create writes the session cookie with the given token. The token is
// stored untransformed; producing a correctly signed token is the login
// flow's responsibility.
func (s *Store) Create(w http.ResponseWriter, tokenString string) {
	s.cookies.Set(w, s.cfg.CookieName, tokenString)
}

// Read returns the verified claims carried by the request's session
// cookie, or nil when the cookie is absent or its token does not
// verify. An absent cookie short-circuits without touching the codec.
func (s *Store) Read(r *http.Request) *token.Claims {
	value, err := s.cookies.Get(r, s.cfg.CookieName)
	if err != nil {
		return nil
	}
	return s.codec.Verify(value)
}

// Refresh performs the sliding-expiry reissue: if the request carries a
// valid session token, a new token with a fresh expiry is signed and
// set on the response. An absent or invalid cookie results in no cookie
// being written; refresh never manufactures a valid session out of an
// invalid one. Returns the refreshed claims, or nil when nothing was
// refreshed.
func (s *Store) Refresh(w http.ResponseWriter, r *http.Request) *token.Claims {
	value, err := s.cookies.Get(r, s.cfg.CookieName)
	if err != nil {
		return nil
	}

	claims := s.codec.Verify(value)
	if claims == nil {
		// Stale or forged cookie: leave it to expire naturally.
		return nil
	}

	// Sign copies the claims and stamps new iat/exp; the verified
	// claims value itself is never mutated.
	fresh, err := s.codec.Sign(*claims)
	if err != nil {
		s.log.Error("session refresh could not re-sign token", "error", err)
		return nil
	}

	s.cookies.Set(w, s.cfg.CookieName, fresh)
	return claims
}

// Destroy clears the session cookie by writing an empty value with an
// expiry in the past. Idempotent.
func (s *Store) Destroy(w http.ResponseWriter) {
	s.cookies.Delete(w, s.cfg.CookieName)
}
