package main

import (
	"github.com/animalet/gregal-go/pkg/config"
	"github.com/animalet/gregal-go/pkg/secrets"
	"github.com/pkg/errors"
)

// registerResolvers wires the secret resolvers declared in the
// configuration file into the global registry. Each section is optional;
// the env resolver is always available.
func registerResolvers(cfg *config.Config) error {
	vaultCfg, err := config.Get[secrets.VaultConfig](cfg, "vault")
	if err != nil {
		return errors.Wrap(err, "failed to load Vault configuration")
	}
	if vaultCfg != nil {
		client, err := vaultCfg.CreateClient()
		if err != nil {
			return errors.Wrap(err, "failed to create Vault client")
		}
		secrets.Register("vault", secrets.NewVaultResolver(client, vaultCfg.Path))
	}

	fileCfg, err := config.Get[secrets.FileConfig](cfg, "file_secrets")
	if err != nil {
		return errors.Wrap(err, "failed to load file secrets configuration")
	}
	if fileCfg != nil {
		resolver, err := fileCfg.CreateClient()
		if err != nil {
			return errors.Wrap(err, "failed to create file secret resolver")
		}
		secrets.Register("file", resolver)
	}

	awsCfg, err := config.Get[secrets.AWSConfig](cfg, "aws")
	if err != nil {
		return errors.Wrap(err, "failed to load AWS Secrets Manager configuration")
	}
	if awsCfg != nil {
		client, err := awsCfg.CreateClient()
		if err != nil {
			return errors.Wrap(err, "failed to create AWS Secrets Manager client")
		}
		secrets.Register("aws", secrets.NewAWSResolver(client, awsCfg.SecretName))
	}

	return nil
}
