package secrets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// FileConfig holds configuration for the file-based resolver.
type FileConfig struct {
	SecretsDir string `yaml:"secrets_dir" toml:"secrets_dir"`
}

// Validate checks if the FileConfig has all required fields set.
func (f FileConfig) Validate() error {
	if f.SecretsDir == "" {
		return errors.New("secrets_dir is required for the file resolver")
	}

	info, err := os.Stat(f.SecretsDir)
	if os.IsNotExist(err) {
		return errors.Errorf("secrets_dir %q does not exist", f.SecretsDir)
	}
	if err != nil {
		return errors.Wrapf(err, "error accessing secrets_dir %q", f.SecretsDir)
	}
	if !info.IsDir() {
		return errors.Errorf("secrets_dir %q is not a directory", f.SecretsDir)
	}
	return nil
}

// CreateClient creates a FileResolver from this config.
func (f FileConfig) CreateClient() (*FileResolver, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return NewFileResolver(f.SecretsDir), nil
}

// FileResolver reads secrets from files in a configured directory.
// Useful for Docker secrets, Kubernetes secrets, or local development.
//
// Example usage in config:
//
//	password: ${file:db_password}  # Reads from <secretsDir>/db_password
//
// File contents are trimmed of whitespace.
type FileResolver struct {
	secretsDir string
}

// NewFileResolver creates a file-based resolver over secretsDir.
func NewFileResolver(secretsDir string) *FileResolver {
	return &FileResolver{secretsDir: secretsDir}
}

// Resolve reads a secret from a file. Keys are relative paths inside the
// secrets directory; anything escaping the directory is rejected.
func (f *FileResolver) Resolve(key string) (string, error) {
	if f.secretsDir == "" {
		return "", errors.New("no secrets directory configured")
	}
	if key == "" {
		return "", errors.New("no file specified for file secret")
	}
	if filepath.IsAbs(key) {
		return "", errors.New("invalid secret key: absolute paths not allowed")
	}

	cleanKey := filepath.Clean(key)
	if strings.Contains(cleanKey, "..") {
		return "", errors.New("invalid secret key: path traversal detected")
	}

	absSecretsDir, err := filepath.Abs(f.secretsDir)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve secrets directory")
	}

	absFilePath, err := filepath.Abs(filepath.Join(f.secretsDir, cleanKey))
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve secret file path")
	}

	if !strings.HasPrefix(absFilePath, absSecretsDir+string(filepath.Separator)) {
		return "", errors.New("invalid secret key: outside secrets directory")
	}

	// #nosec G304 -- Path traversal is prevented by validation above
	content, err := os.ReadFile(absFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("secret not found")
		}
		return "", errors.New("failed to read secret")
	}

	secret := strings.TrimSpace(string(content))
	log.Debug().Str("file", absFilePath).Msg("Retrieved secret from file")
	return secret, nil
}

// Name returns the resolver name
func (f *FileResolver) Name() string {
	return "File"
}
