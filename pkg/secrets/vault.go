package secrets

import (
	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// VaultConfig holds configuration for connecting to HashiCorp Vault.
type VaultConfig struct {
	Address   string `yaml:"address" toml:"address"`
	Token     string `yaml:"token" toml:"token"`
	Path      string `yaml:"path" toml:"path"`
	Namespace string `yaml:"namespace" toml:"namespace"`
}

// Validate checks if the VaultConfig has all required fields set.
func (v VaultConfig) Validate() error {
	if v.Address == "" {
		return errors.New("Vault address is required")
	}
	if v.Token == "" {
		return errors.New("Vault token is required")
	}
	if v.Path == "" {
		return errors.New("Vault path is required")
	}
	return nil
}

// CreateClient creates and configures a Vault API client from this config.
func (v VaultConfig) CreateClient() (*api.Client, error) {
	if err := v.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid Vault configuration")
	}

	config := api.DefaultConfig()
	config.Address = v.Address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Vault client")
	}

	client.SetToken(v.Token)
	if v.Namespace != "" {
		client.SetNamespace(v.Namespace)
	}
	return client, nil
}

// VaultResolver retrieves secrets from HashiCorp Vault. Supports both
// KV v1 and KV v2 secret engines.
//
// Example usage in config:
//
//	password: ${vault:DATABASE_PASSWORD}  # Reads from configured Vault path
type VaultResolver struct {
	logical *api.Logical
	path    string
}

// NewVaultResolver creates a Vault-based resolver reading from path
// (e.g. "secret/data/myapp").
func NewVaultResolver(client *api.Client, path string) *VaultResolver {
	return &VaultResolver{
		logical: client.Logical(),
		path:    path,
	}
}

// Resolve retrieves a secret from Vault.
func (v *VaultResolver) Resolve(key string) (string, error) {
	secret, err := v.logical.Read(v.path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read secret from Vault path %q", v.path)
	}

	if secret == nil || secret.Data == nil {
		return "", errors.Errorf("no secret found at Vault path %q", v.path)
	}

	// KV v2 wraps the payload in a "data" map; KV v1 does not.
	data := secret.Data
	if secret.Data["data"] != nil {
		dataMap, ok := secret.Data["data"].(map[string]interface{})
		if !ok {
			return "", errors.New("unexpected data format in KV v2 secret")
		}
		data = dataMap
	}

	if strValue, ok := data[key].(string); ok {
		log.Debug().
			Str("secret_name", key).
			Str("vault_path", v.path).
			Msg("Retrieved secret from Vault")
		return strValue, nil
	}

	return "", errors.Errorf("secret %q not found in Vault at path %q", key, v.path)
}

// Name returns the resolver name
func (v *VaultResolver) Name() string {
	return "Vault"
}
