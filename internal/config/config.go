package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/minima-hotel/backoffice-api/internal/secrets"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Mail      MailConfig
	Reports   ReportsConfig
	Analytics AnalyticsConfig
	Audit     AuditConfig
	AzureAd   AzureAdConfig
	ApiKey    ApiKeyConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	// HotelName is the display name rendered into report emails
	HotelName string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// MailConfig holds the transactional email provider settings.
// The API key only ever comes from the vault or environment, never a file.
type MailConfig struct {
	Enabled bool
	// BaseURL of the provider's REST API
	BaseURL string
	// APIKey authenticates against the provider (from MAIL-API-KEY secret)
	APIKey string
	// SenderName and SenderEmail appear as the From header
	SenderName  string
	SenderEmail string
	// Timeout for a single send call (seconds)
	Timeout int
}

// ReportsConfig controls the scheduled report dispatcher
type ReportsConfig struct {
	// DispatchEnabled turns the cron dispatcher on
	DispatchEnabled bool
	// DispatchInterval is minutes between due-schedule sweeps
	DispatchInterval int
	// ArchiveEnabled stores a copy of every sent report in blob storage
	ArchiveEnabled bool
}

// AnalyticsConfig controls the analytics result cache
type AnalyticsConfig struct {
	// CacheEnabled turns the in-memory result cache on
	CacheEnabled bool
	// CacheTTL is seconds a cached result stays fresh
	CacheTTL int
}

// AuditConfig controls the audit trail retention policy
type AuditConfig struct {
	// RetentionDays is how long audit entries are kept; 0 keeps them forever
	RetentionDays int
}

type AzureAdConfig struct {
	TenantId       string
	ClientId       string
	InstanceUrl    string
	RequiredScopes string
}

type ApiKeyConfig struct {
	SecretName string
	Value      string // Loaded from secrets or environment
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
}

type SecretsConfig struct {
	KeyVaultName string
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	XSSProtection         string
	ReferrerPolicy        string
	PermissionsPolicy     string
}

// RateLimitConfig holds the per-minute request budgets. The service tier
// covers the PMS integration, whose single API key carries traffic for
// every terminal on the property.
type RateLimitConfig struct {
	Enabled                  bool
	RequestsPerMinute        int
	RequestsPerMinuteAuth    int
	RequestsPerMinuteService int
	WhitelistIPs             []string
	WhitelistPaths           []string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// TimeoutDuration returns the mail send timeout as duration
func (m *MailConfig) TimeoutDuration() time.Duration {
	return time.Duration(m.Timeout) * time.Second
}

// DispatchIntervalDuration returns the dispatcher sweep interval as duration
func (r *ReportsConfig) DispatchIntervalDuration() time.Duration {
	return time.Duration(r.DispatchInterval) * time.Minute
}

// CacheTTLDuration returns the analytics cache TTL as duration
func (a *AnalyticsConfig) CacheTTLDuration() time.Duration {
	return time.Duration(a.CacheTTL) * time.Second
}

// Load loads configuration from file and environment variables.
// This is a basic load that doesn't fetch secrets from vault;
// use LoadWithSecrets for full secret resolution.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ApiKey.Value == "" {
		cfg.ApiKey.Value = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Mail.APIKey == "" {
		cfg.Mail.APIKey = v.GetString("MAIL_API_KEY")
	}

	if cfg.AzureAd.TenantId == "" {
		cfg.AzureAd.TenantId = v.GetString("AZURE_TENANT_ID")
	}
	if cfg.AzureAd.ClientId == "" {
		cfg.AzureAd.ClientId = v.GetString("AZURE_CLIENT_ID")
	}
	if cfg.AzureAd.RequiredScopes == "" {
		cfg.AzureAd.RequiredScopes = v.GetString("AZURE_REQUIRED_SCOPES")
	}

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves secrets from the
// configured source. In development (or when secrets.source =
// "environment"), secrets come from env vars; in staging/production with
// USE_AZURE_KEY_VAULT=true they come from Azure Key Vault.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	logger.Info("Azure Key Vault enabled for secrets",
		zap.String("environment", cfg.App.Environment),
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		VaultName: cfg.Secrets.KeyVaultName,
		CacheTTL:  time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	logger.Info("Loading secrets from Azure Key Vault")

	// Database credentials come from the vault; the database name is
	// environment-specific and stays an env var.
	if host, err := provider.Resolve(ctx, "DATABASE_HOST", "POSTGRES-MAIN-HOST"); err == nil && host != "" {
		cfg.Database.Host = host
	}
	if defaultDB := os.Getenv("DEFAULT_DATABASE"); defaultDB != "" {
		cfg.Database.Name = defaultDB
	}
	if user, err := provider.Resolve(ctx, "DATABASE_USER", "POSTGRES-MAIN-USER"); err == nil && user != "" {
		cfg.Database.User = user
	}
	if password, err := provider.Resolve(ctx, "DATABASE_PASSWORD", "POSTGRES-MAIN-PASSWORD"); err == nil && password != "" {
		cfg.Database.Password = password
	}
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}

	if tenantId, err := provider.Resolve(ctx, "AZURE_TENANT_ID", "azure-tenant-id"); err == nil && tenantId != "" {
		cfg.AzureAd.TenantId = tenantId
	}
	if clientId, err := provider.Resolve(ctx, "AZURE_CLIENT_ID", "azure-client-id"); err == nil && clientId != "" {
		cfg.AzureAd.ClientId = clientId
	}

	if apiKey, err := provider.Resolve(ctx, "ADMIN_API_KEY", "admin-api-key"); err == nil && apiKey != "" {
		cfg.ApiKey.Value = apiKey
	}

	// Mail provider key is a hard secret: report emails cannot go out
	// without it, but startup must not fail when mail is disabled.
	if mailKey, err := provider.Resolve(ctx, "MAIL_API_KEY", "MAIL-API-KEY"); err == nil && mailKey != "" {
		cfg.Mail.APIKey = mailKey
	} else if cfg.Mail.Enabled && cfg.Mail.APIKey == "" {
		logger.Warn("mail is enabled but no MAIL-API-KEY secret was found")
	}

	if connStr, err := provider.Resolve(ctx, "STORAGE_CLOUDCONNECTIONSTRING", "storage-connection-string"); err == nil && connStr != "" {
		cfg.Storage.CloudConnectionString = connStr
	}

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Minima Hotel Back Office API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.hotelName", "Minima Hotel")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "backoffice")
	v.SetDefault("database.user", "backoffice_user")
	v.SetDefault("database.password", "backoffice_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	// Mail defaults (transactional email provider, Brevo-compatible API)
	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.baseURL", "https://api.brevo.com/v3")
	v.SetDefault("mail.senderName", "Minima Hotel Reports")
	v.SetDefault("mail.senderEmail", "reports@minimahotel.example")
	v.SetDefault("mail.timeout", 15)

	// Report dispatcher defaults
	v.SetDefault("reports.dispatchEnabled", true)
	v.SetDefault("reports.dispatchInterval", 15)
	v.SetDefault("reports.archiveEnabled", false)

	// Analytics cache defaults
	v.SetDefault("analytics.cacheEnabled", true)
	v.SetDefault("analytics.cacheTTL", 300)

	// Audit defaults
	v.SetDefault("audit.retentionDays", 365)

	// Secrets defaults
	v.SetDefault("secrets.cacheTTL", 300)

	// Azure AD defaults
	v.SetDefault("azuread.instanceUrl", "https://login.microsoftonline.com/")

	// Storage defaults
	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.cloudContainer", "report-archive")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults - secure by default
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.requestsPerMinuteService", 600)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})
}
