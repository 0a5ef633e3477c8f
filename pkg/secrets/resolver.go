// Package secrets provides an extensible property resolution system:
// configuration values reference secrets as "prefix:key" and each prefix is
// served by a registered resolver (environment variables, files, Vault,
// AWS Secrets Manager, or anything custom).
package secrets

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PropertyResolver is the interface every secret provider implements.
type PropertyResolver interface {
	// Resolve retrieves the value for the given key (without the prefix).
	Resolve(key string) (string, error)

	// Name returns a human-readable provider name for logging.
	Name() string
}

// resolvers maps prefixes to their registered providers. It is populated
// during startup, before any concurrent reads happen.
var resolvers = make(map[string]PropertyResolver)

func init() {
	Register("env", NewEnvResolver())
}

// Register associates a resolver with a prefix (without the trailing
// colon). Registering over an existing prefix replaces it with a warning.
func Register(prefix string, resolver PropertyResolver) {
	if _, exists := resolvers[prefix]; exists {
		log.Warn().Msgf("Overriding existing secret resolver for prefix %q", prefix)
	}
	resolvers[prefix] = resolver
}

// Unregister removes the resolver for a prefix. Useful for tests and
// dynamic reconfiguration.
func Unregister(prefix string) {
	delete(resolvers, prefix)
}

// Resolve resolves a property of the form "prefix:key". A property without
// a prefix defaults to the environment resolver, so "${PORT}" and
// "${env:PORT}" are equivalent.
func Resolve(property string) (string, error) {
	prefix, key := splitProperty(property)

	resolver, exists := resolvers[prefix]
	if !exists {
		return "", errors.Errorf("no secret resolver registered for prefix %q", prefix)
	}

	value, err := resolver.Resolve(key)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve property %q using %s resolver", property, resolver.Name())
	}
	return value, nil
}

// ListPrefixes returns all registered prefixes.
func ListPrefixes() []string {
	prefixes := make([]string, 0, len(resolvers))
	for prefix := range resolvers {
		prefixes = append(prefixes, prefix)
	}
	return prefixes
}

// splitProperty splits "prefix:key" at the first colon. Later colons
// belong to the key. No colon means the env resolver.
func splitProperty(property string) (prefix, key string) {
	if before, after, found := strings.Cut(property, ":"); found {
		return before, after
	}
	return "env", property
}
