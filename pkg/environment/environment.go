package environment

import "context"

// Environment represents the application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse normalizes an environment name, accepting the common short
// forms. Anything unrecognized resolves to Development.
func Parse(s string) Environment {
	switch s {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

// IsProduction reports whether the environment is production. The
// session cookie Secure flag keys off this.
func (e Environment) IsProduction() bool {
	return e == Production
}

type contextKey struct{}

// WithContext adds the environment to the context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves the environment from the context, defaulting to
// Development when unset.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return Development
	}
	env, ok := ctx.Value(contextKey{}).(Environment)
	if !ok {
		return Development
	}
	return env
}
