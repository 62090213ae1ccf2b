package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Header constants for the compact token format (RFC 7515 compatible).
const (
	headerType      = "JWT"
	headerAlgorithm = "HS256"
)

// DefaultTTL is the fixed lifetime of an issued session token.
const DefaultTTL = 24 * time.Hour

// header is the signed token header.
type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Claims is the payload carried by a session token. A claims value is
// immutable once issued; a refresh produces a new value with a later
// expiry rather than mutating the old one.
type Claims struct {
	UserID    int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// Valid reports whether the temporal claims hold at the given instant.
func (c Claims) Valid(now time.Time) error {
	if c.ExpiresAt > 0 && now.Unix() > c.ExpiresAt {
		return ErrExpiredToken
	}
	return nil
}

// Option configures a Codec.
type Option func(*Codec)

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Codec) { c.ttl = ttl }
}

// WithClock overrides the time source, used by tests to issue tokens
// in the past or future.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used for unexpected verification errors.
func WithLogger(log *slog.Logger) Option {
	return func(c *Codec) {
		if log != nil {
			c.log = log
		}
	}
}

// Codec signs and verifies compact session tokens using HMAC-SHA256.
// The secret is kept in memory only and should be at least 32 bytes.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger
}

// New creates a Codec with the provided signing secret. An empty secret
// is a deployment mistake and fails hard rather than producing tokens
// nobody can verify.
func New(secret string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	c := &Codec{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Sign issues a token for the given claims. The issued-at and expiry
// timestamps are always set here; values already present on the claims
// are overwritten.
func (c *Codec) Sign(claims Claims) (string, error) {
	now := c.now()
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(c.ttl).Unix()

	headerJSON, err := json.Marshal(header{Type: headerType, Algorithm: headerAlgorithm})
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	return payload + "." + c.sign(payload), nil
}

// Parse validates a token and returns its claims. It checks the
// signature in constant time, rejects unexpected algorithms, and
// enforces expiry. Callers that must not distinguish failure modes
// should use Verify instead.
func (c *Codec) Parse(tokenString string) (Claims, error) {
	var claims Claims

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return claims, ErrMalformedToken
	}

	payload := parts[0] + "." + parts[1]
	expected := c.sign(payload)
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return claims, ErrInvalidSignature
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return claims, errors.Join(ErrMalformedToken, err)
	}

	var hdr header
	if err := json.Unmarshal(headerJSON, &hdr); err != nil {
		return claims, errors.Join(ErrMalformedToken, err)
	}
	if hdr.Algorithm != headerAlgorithm {
		return claims, ErrUnexpectedAlgorithm
	}

	claimsJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return claims, errors.Join(ErrMalformedToken, err)
	}
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return claims, errors.Join(ErrMalformedToken, err)
	}

	if err := claims.Valid(c.now()); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// Verify collapses every failure mode of Parse into nil: a forged,
// expired, malformed, or absent token is indistinguishable from no
// session at all. Unexpected errors are logged but still surface as
// nil so a forgotten error branch can never grant access.
func (c *Codec) Verify(tokenString string) *Claims {
	if tokenString == "" {
		return nil
	}

	claims, err := c.Parse(tokenString)
	if err != nil {
		if !errors.Is(err, ErrMalformedToken) &&
			!errors.Is(err, ErrInvalidSignature) &&
			!errors.Is(err, ErrExpiredToken) &&
			!errors.Is(err, ErrUnexpectedAlgorithm) {
			c.log.Warn("token verification failed unexpectedly", "error", err)
		}
		return nil
	}

	return &claims
}

// sign computes the base64url-encoded HMAC-SHA256 signature of payload.
func (c *Codec) sign(payload string) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}

func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
