package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/guideshare/guideshare/pkg/token"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid username or password")
	ErrUsernameTaken      = errors.New("auth: username already taken")
)

// User is an account record as stored by the user store.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	IsAdmin      bool
}

// UserStore defines the storage operations the auth service needs.
type UserStore interface {
	UserByUsername(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, username string, passwordHash []byte) (User, error)
}

// Service verifies credentials and issues signed session tokens. It is
// the only producer of tokens; the session store and the gate only ever
// verify them.
type Service struct {
	users      UserStore
	codec      *token.Codec
	bcryptCost int
	log        *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates an auth service.
func NewService(users UserStore, codec *token.Codec, opts ...Option) *Service {
	s := &Service{
		users:      users,
		codec:      codec,
		bcryptCost: bcrypt.DefaultCost,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the credentials and returns a freshly signed session
// token. An unknown username and a wrong password are indistinguishable
// to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// Register creates an account and returns a session token for it, so a
// fresh registration is immediately logged in.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}

	user, err := s.users.CreateUser(ctx, username, hash)
	if err != nil {
		return "", err
	}

	return s.issueToken(user)
}

func (s *Service) issueToken(user User) (string, error) {
	signed, err := s.codec.Sign(token.Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		// Only reachable on a marshaling failure; the codec's secret
		// was validated at construction.
		s.log.Error("failed to sign session token", "user_id", user.ID, "error", err)
		return "", err
	}
	return signed, nil
}
