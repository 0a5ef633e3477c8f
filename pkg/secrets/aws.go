package secrets

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AWSConfig holds configuration for AWS Secrets Manager.
type AWSConfig struct {
	Region          string `yaml:"region" toml:"region"`
	AccessKeyID     string `yaml:"access_key_id" toml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" toml:"secret_access_key"`
	SecretName      string `yaml:"secret_name" toml:"secret_name"`
	Endpoint        string `yaml:"endpoint" toml:"endpoint"` // Optional: for LocalStack or custom endpoints
}

// Validate checks if the AWSConfig has all required fields set.
func (a AWSConfig) Validate() error {
	if a.Region == "" {
		return errors.New("AWS region is required")
	}
	if a.SecretName == "" {
		return errors.New("AWS secret name is required")
	}
	// Credentials are optional - the default chain (IAM role, env vars) applies otherwise
	return nil
}

// CreateClient creates and configures an AWS Secrets Manager client from
// this config.
func (a AWSConfig) CreateClient() (*secretsmanager.Client, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(a.Region),
	}

	if a.Endpoint != "" {
		configOpts = append(configOpts, config.WithBaseEndpoint(a.Endpoint))
	}

	if a.AccessKeyID != "" && a.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(a.AccessKeyID, a.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}

	return secretsmanager.NewFromConfig(cfg), nil
}

// AWSResolver retrieves secrets from AWS Secrets Manager. The stored
// secret value can be a plain string or a JSON object holding multiple
// key-value pairs.
//
// Example usage in config:
//
//	password: ${aws:DATABASE_PASSWORD}  # Reads from configured AWS secret
type AWSResolver struct {
	client     *secretsmanager.Client
	secretName string
}

// NewAWSResolver creates an AWS Secrets Manager-based resolver reading the
// named secret.
func NewAWSResolver(client *secretsmanager.Client, secretName string) *AWSResolver {
	return &AWSResolver{
		client:     client,
		secretName: secretName,
	}
}

// Resolve retrieves a secret from AWS Secrets Manager. When the secret
// payload is a JSON object, key selects an entry; for plain string
// payloads the whole value is returned.
func (a *AWSResolver) Resolve(key string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(a.secretName),
	}

	result, err := a.client.GetSecretValue(context.Background(), input)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read secret %q from AWS Secrets Manager", a.secretName)
	}

	if result.SecretString == nil {
		return "", errors.Errorf("secret %q has no string value", a.secretName)
	}
	payload := *result.SecretString

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		// Plain string secret
		log.Debug().
			Str("secret_name", a.secretName).
			Msg("Retrieved plain string secret from AWS Secrets Manager")
		return payload, nil
	}

	if strValue, ok := fields[key].(string); ok {
		log.Debug().
			Str("secret_name", key).
			Str("aws_secret", a.secretName).
			Msg("Retrieved secret from AWS Secrets Manager")
		return strValue, nil
	}

	return "", errors.Errorf("key %q not found in AWS secret %q", key, a.secretName)
}

// Name returns the resolver name
func (a *AWSResolver) Name() string {
	return "AWS Secrets Manager"
}
