package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

// VaultClient reads secrets from one Azure Key Vault. Fetched values are
// cached with a TTL so the handful of lookups at startup never hits the
// vault twice for the same name. Resolution happens on the startup
// goroutine only, so the cache needs no locking.
type VaultClient struct {
	client    *azsecrets.Client
	vaultName string
	logger    *zap.Logger
	cache     map[string]cachedSecret
	ttl       time.Duration
}

type cachedSecret struct {
	value     string
	expiresAt time.Time
}

// VaultConfig holds configuration for the vault client.
type VaultConfig struct {
	VaultName string
	CacheTTL  time.Duration
}

// NewVaultClient creates a new Azure Key Vault client. Authentication goes
// through DefaultAzureCredential: managed identity in Azure, the Azure CLI
// login locally.
func NewVaultClient(cfg *VaultConfig, logger *zap.Logger) (*VaultClient, error) {
	if cfg.VaultName == "" {
		return nil, fmt.Errorf("vault name is required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", cfg.VaultName)

	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	logger.Info("Azure Key Vault client initialized",
		zap.String("vault_url", vaultURL),
	)

	return &VaultClient{
		client:    client,
		vaultName: cfg.VaultName,
		logger:    logger,
		cache:     make(map[string]cachedSecret),
		ttl:       ttl,
	}, nil
}

// GetSecret retrieves a secret from the vault, using the cache when fresh.
func (v *VaultClient) GetSecret(ctx context.Context, secretName string) (string, error) {
	if cached, ok := v.cache[secretName]; ok {
		if time.Now().Before(cached.expiresAt) {
			return cached.value, nil
		}
		delete(v.cache, secretName)
	}

	resp, err := v.client.GetSecret(ctx, secretName, "", nil)
	if err != nil {
		v.logger.Error("Failed to get secret from Key Vault",
			zap.String("secret_name", secretName),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to get secret '%s': %w", secretName, err)
	}

	if resp.Value == nil {
		return "", fmt.Errorf("secret '%s' has no value", secretName)
	}

	value := *resp.Value
	v.cache[secretName] = cachedSecret{
		value:     value,
		expiresAt: time.Now().Add(v.ttl),
	}

	return value, nil
}
