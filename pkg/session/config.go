package session

// Config holds session cookie configuration.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{CookieName: "session"}
}
