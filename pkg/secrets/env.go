package secrets

import (
	"github.com/animalet/gregal-go/pkg/environment"
	"github.com/rs/zerolog/log"
)

// EnvResolver resolves properties from the process environment table.
// This is the default resolver when no prefix is specified.
//
// Example usage in config:
//
//	address: ${PORT}           # Resolves from env (implicit)
//	address: ${env:PORT}       # Resolves from env (explicit)
type EnvResolver struct {
	process environment.Process
}

// NewEnvResolver creates a resolver over the real process environment.
func NewEnvResolver() *EnvResolver {
	return &EnvResolver{process: environment.NewProcess()}
}

// NewEnvResolverFromProcess creates a resolver over a specific process
// capability. Tests use this to avoid touching the real table.
func NewEnvResolverFromProcess(process environment.Process) *EnvResolver {
	return &EnvResolver{process: process}
}

// Resolve retrieves an environment variable value. Missing variables are
// not an error, matching os.Expand semantics, but they are logged to
// prevent silent failures.
func (e *EnvResolver) Resolve(key string) (string, error) {
	value, ok := e.process.Get(key)
	if !ok || value == "" {
		log.Warn().
			Str("env_var", key).
			Msg("Environment variable not set or empty - using empty string")
	} else {
		log.Debug().
			Str("env_var", key).
			Msg("Retrieved value from environment variable")
	}
	return value, nil
}

// Name returns the resolver name
func (e *EnvResolver) Name() string {
	return "Environment"
}
