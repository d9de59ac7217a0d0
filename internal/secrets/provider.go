// Package secrets resolves deployment credentials for the back-office API:
// the Postgres login, the Brevo mail key, the admin API key and the archive
// storage connection string. An explicitly set environment variable always
// wins; anything unset is fetched from Azure Key Vault, where names use
// dashes (POSTGRES-MAIN-PASSWORD) instead of underscores.
package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Provider resolves secrets against a single Key Vault.
type Provider struct {
	vault  *VaultClient
	logger *zap.Logger
}

// ProviderConfig holds configuration for the secrets provider.
type ProviderConfig struct {
	VaultName string
	CacheTTL  time.Duration
}

// NewProvider creates a vault-backed secrets provider.
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	if cfg.VaultName == "" {
		return nil, fmt.Errorf("vault name required")
	}

	vault, err := NewVaultClient(&VaultConfig{
		VaultName: cfg.VaultName,
		CacheTTL:  cfg.CacheTTL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vault client: %w", err)
	}

	return &Provider{vault: vault, logger: logger}, nil
}

// Resolve returns the environment variable when set, the vault secret
// otherwise.
func (p *Provider) Resolve(ctx context.Context, envName, secretName string) (string, error) {
	if value := os.Getenv(envName); value != "" {
		p.logger.Debug("Using environment variable override",
			zap.String("env_name", envName),
		)
		return value, nil
	}

	return p.vault.GetSecret(ctx, secretName)
}
