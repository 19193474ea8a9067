package environment

import (
	"context"
	"strings"
)

// Environment represents the deployment mode of the service.
// Channel senders only reach real providers in Production and Staging.
type Environment string

const (
	// Development logs outbound messages instead of sending them.
	Development Environment = "development"
	// Production sends through the configured providers.
	Production Environment = "production"
	// Staging behaves like production with its own credentials.
	Staging Environment = "staging"
)

// Parse normalizes an ENVIRONMENT value. Short aliases are accepted;
// anything unrecognized falls back to Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

// IsDevelopment reports whether outbound channels should stay local
func (e Environment) IsDevelopment() bool {
	return e != Production && e != Staging
}

// IsProduction reports whether e is Production
func (e Environment) IsProduction() bool {
	return e == Production
}

func (e Environment) String() string {
	return string(e)
}

type contextKey struct{}

// WithContext adds environment to context
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves environment from context
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction checks if the environment from context is production
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}

// IsDevelopment checks if the environment from context is development.
// A context without an environment counts as development.
func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx).IsDevelopment()
}
