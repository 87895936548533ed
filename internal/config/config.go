package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	DB           DBConfig
	JWT          JWTConfig
	S3           S3Config
	Log          LogConfig
	Extractor    ExtractorConfig
	Pipeline     PipelineConfig
	Enrichment   EnrichmentConfig
	Conversation ConversationConfig
	CORS         CORSConfig
	Email        EmailConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractorProviderConfig holds settings for a single extraction provider.
type ExtractorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	Endpoint     string `mapstructure:"endpoint"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds document extraction settings with multi-provider
// fallback: primary, then secondary, then tertiary.
type ExtractorConfig struct {
	Primary   ExtractorProviderConfig `mapstructure:"primary"`
	Secondary ExtractorProviderConfig `mapstructure:"secondary"`
	Tertiary  ExtractorProviderConfig `mapstructure:"tertiary"`
}

// Chain returns the configured providers in fallback order, skipping the
// unconfigured slots.
func (e *ExtractorConfig) Chain() []*ExtractorProviderConfig {
	var out []*ExtractorProviderConfig
	for _, p := range []*ExtractorProviderConfig{&e.Primary, &e.Secondary, &e.Tertiary} {
		if p.Provider != "" {
			out = append(out, p)
		}
	}
	return out
}

// PipelineConfig holds document pipeline tuning knobs.
type PipelineConfig struct {
	AcceptanceThreshold  float64 `mapstructure:"acceptance_threshold"`
	NewEntityConfidence  float64 `mapstructure:"new_entity_confidence"`
	EnrichedConfidence   float64 `mapstructure:"enriched_confidence"`
	LargeAmountThreshold float64 `mapstructure:"large_amount_threshold"`
	MaxFileSizeMB        int64   `mapstructure:"max_file_size_mb"`
	CardTTLHours         int     `mapstructure:"card_ttl_hours"`
}

// CardTTL returns the action card expiry duration. Zero disables expiry.
func (p *PipelineConfig) CardTTL() time.Duration {
	return time.Duration(p.CardTTLHours) * time.Hour
}

// EnrichmentConfig holds web enrichment settings.
type EnrichmentConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ConversationConfig holds conversation session settings.
type ConversationConfig struct {
	IdleTTLMins int `mapstructure:"idle_ttl_mins"`
}

// IdleTTL returns the idle expiry duration for conversations.
func (c *ConversationConfig) IdleTTL() time.Duration {
	return time.Duration(c.IdleTTLMins) * time.Minute
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for document archiving.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the INGRID_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "ingrid")
	v.SetDefault("db.password", "ingrid_secret")
	v.SetDefault("db.name", "ingrid_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.issuer", "ingrid")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "ingrid-documents")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Extractor defaults
	v.SetDefault("extractor.primary.provider", "claude")
	v.SetDefault("extractor.primary.api_key", "")
	v.SetDefault("extractor.primary.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("extractor.primary.endpoint", "")
	v.SetDefault("extractor.primary.max_retries", 2)
	v.SetDefault("extractor.primary.timeout_secs", 120)
	v.SetDefault("extractor.secondary.provider", "")
	v.SetDefault("extractor.secondary.api_key", "")
	v.SetDefault("extractor.secondary.default_model", "")
	v.SetDefault("extractor.secondary.endpoint", "")
	v.SetDefault("extractor.secondary.max_retries", 2)
	v.SetDefault("extractor.secondary.timeout_secs", 120)
	v.SetDefault("extractor.tertiary.provider", "")
	v.SetDefault("extractor.tertiary.api_key", "")
	v.SetDefault("extractor.tertiary.default_model", "")
	v.SetDefault("extractor.tertiary.endpoint", "")
	v.SetDefault("extractor.tertiary.max_retries", 2)
	v.SetDefault("extractor.tertiary.timeout_secs", 120)

	// Pipeline defaults
	v.SetDefault("pipeline.acceptance_threshold", 0.80)
	v.SetDefault("pipeline.new_entity_confidence", 0.30)
	v.SetDefault("pipeline.enriched_confidence", 0.60)
	v.SetDefault("pipeline.large_amount_threshold", 10000)
	v.SetDefault("pipeline.max_file_size_mb", 25)
	v.SetDefault("pipeline.card_ttl_hours", 72)

	// Enrichment defaults
	v.SetDefault("enrichment.enabled", false)
	v.SetDefault("enrichment.endpoint", "")
	v.SetDefault("enrichment.api_key", "")
	v.SetDefault("enrichment.timeout_secs", 10)

	// Conversation defaults
	v.SetDefault("conversation.idle_ttl_mins", 30)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@ingrid.example.com")
	v.SetDefault("email.from_name", "Ingrid")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "INGRID_SERVER_PORT",
		"server.read_timeout":  "INGRID_SERVER_READ_TIMEOUT",
		"server.write_timeout": "INGRID_SERVER_WRITE_TIMEOUT",
		"server.environment":   "INGRID_SERVER_ENVIRONMENT",
		"db.host":              "INGRID_DB_HOST",
		"db.port":              "INGRID_DB_PORT",
		"db.user":              "INGRID_DB_USER",
		"db.password":          "INGRID_DB_PASSWORD",
		"db.name":              "INGRID_DB_NAME",
		"db.sslmode":           "INGRID_DB_SSLMODE",
		"db.max_open":          "INGRID_DB_MAX_OPEN",
		"db.max_idle":          "INGRID_DB_MAX_IDLE",
		"jwt.secret":           "INGRID_JWT_SECRET",
		"jwt.access_expiry":    "INGRID_JWT_ACCESS_EXPIRY",
		"jwt.issuer":           "INGRID_JWT_ISSUER",
		"s3.region":            "INGRID_S3_REGION",
		"s3.bucket":            "INGRID_S3_BUCKET",
		"s3.endpoint":          "INGRID_S3_ENDPOINT",
		"s3.access_key":        "INGRID_S3_ACCESS_KEY",
		"s3.secret_key":        "INGRID_S3_SECRET_KEY",
		"log.level":            "INGRID_LOG_LEVEL",
		"log.format":           "INGRID_LOG_FORMAT",
		"cors.allowed_origins": "INGRID_CORS_ALLOWED_ORIGINS",

		"extractor.primary.provider":        "INGRID_EXTRACTOR_PRIMARY_PROVIDER",
		"extractor.primary.api_key":         "INGRID_EXTRACTOR_PRIMARY_API_KEY",
		"extractor.primary.default_model":   "INGRID_EXTRACTOR_PRIMARY_DEFAULT_MODEL",
		"extractor.primary.endpoint":        "INGRID_EXTRACTOR_PRIMARY_ENDPOINT",
		"extractor.primary.max_retries":     "INGRID_EXTRACTOR_PRIMARY_MAX_RETRIES",
		"extractor.primary.timeout_secs":    "INGRID_EXTRACTOR_PRIMARY_TIMEOUT_SECS",
		"extractor.secondary.provider":      "INGRID_EXTRACTOR_SECONDARY_PROVIDER",
		"extractor.secondary.api_key":       "INGRID_EXTRACTOR_SECONDARY_API_KEY",
		"extractor.secondary.default_model": "INGRID_EXTRACTOR_SECONDARY_DEFAULT_MODEL",
		"extractor.secondary.endpoint":      "INGRID_EXTRACTOR_SECONDARY_ENDPOINT",
		"extractor.secondary.max_retries":   "INGRID_EXTRACTOR_SECONDARY_MAX_RETRIES",
		"extractor.secondary.timeout_secs":  "INGRID_EXTRACTOR_SECONDARY_TIMEOUT_SECS",
		"extractor.tertiary.provider":       "INGRID_EXTRACTOR_TERTIARY_PROVIDER",
		"extractor.tertiary.api_key":        "INGRID_EXTRACTOR_TERTIARY_API_KEY",
		"extractor.tertiary.default_model":  "INGRID_EXTRACTOR_TERTIARY_DEFAULT_MODEL",
		"extractor.tertiary.endpoint":       "INGRID_EXTRACTOR_TERTIARY_ENDPOINT",
		"extractor.tertiary.max_retries":    "INGRID_EXTRACTOR_TERTIARY_MAX_RETRIES",
		"extractor.tertiary.timeout_secs":   "INGRID_EXTRACTOR_TERTIARY_TIMEOUT_SECS",

		"pipeline.acceptance_threshold":   "INGRID_PIPELINE_ACCEPTANCE_THRESHOLD",
		"pipeline.new_entity_confidence":  "INGRID_PIPELINE_NEW_ENTITY_CONFIDENCE",
		"pipeline.enriched_confidence":    "INGRID_PIPELINE_ENRICHED_CONFIDENCE",
		"pipeline.large_amount_threshold": "INGRID_PIPELINE_LARGE_AMOUNT_THRESHOLD",
		"pipeline.max_file_size_mb":       "INGRID_PIPELINE_MAX_FILE_SIZE_MB",
		"pipeline.card_ttl_hours":         "INGRID_PIPELINE_CARD_TTL_HOURS",

		"enrichment.enabled":      "INGRID_ENRICHMENT_ENABLED",
		"enrichment.endpoint":     "INGRID_ENRICHMENT_ENDPOINT",
		"enrichment.api_key":      "INGRID_ENRICHMENT_API_KEY",
		"enrichment.timeout_secs": "INGRID_ENRICHMENT_TIMEOUT_SECS",

		"conversation.idle_ttl_mins": "INGRID_CONVERSATION_IDLE_TTL_MINS",

		"email.provider":     "INGRID_EMAIL_PROVIDER",
		"email.region":       "INGRID_EMAIL_REGION",
		"email.from_address": "INGRID_EMAIL_FROM_ADDRESS",
		"email.from_name":    "INGRID_EMAIL_FROM_NAME",
		"email.frontend_url": "INGRID_EMAIL_FRONTEND_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INGRID_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INGRID_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	providerAt := func(slot string) ExtractorProviderConfig {
		return ExtractorProviderConfig{
			Provider:     v.GetString("extractor." + slot + ".provider"),
			APIKey:       v.GetString("extractor." + slot + ".api_key"),
			DefaultModel: v.GetString("extractor." + slot + ".default_model"),
			Endpoint:     v.GetString("extractor." + slot + ".endpoint"),
			MaxRetries:   v.GetInt("extractor." + slot + ".max_retries"),
			TimeoutSecs:  v.GetInt("extractor." + slot + ".timeout_secs"),
		}
	}
	cfg.Extractor = ExtractorConfig{
		Primary:   providerAt("primary"),
		Secondary: providerAt("secondary"),
		Tertiary:  providerAt("tertiary"),
	}

	cfg.Pipeline = PipelineConfig{
		AcceptanceThreshold:  v.GetFloat64("pipeline.acceptance_threshold"),
		NewEntityConfidence:  v.GetFloat64("pipeline.new_entity_confidence"),
		EnrichedConfidence:   v.GetFloat64("pipeline.enriched_confidence"),
		LargeAmountThreshold: v.GetFloat64("pipeline.large_amount_threshold"),
		MaxFileSizeMB:        v.GetInt64("pipeline.max_file_size_mb"),
		CardTTLHours:         v.GetInt("pipeline.card_ttl_hours"),
	}

	cfg.Enrichment = EnrichmentConfig{
		Enabled:     v.GetBool("enrichment.enabled"),
		Endpoint:    v.GetString("enrichment.endpoint"),
		APIKey:      v.GetString("enrichment.api_key"),
		TimeoutSecs: v.GetInt("enrichment.timeout_secs"),
	}

	cfg.Conversation = ConversationConfig{
		IdleTTLMins: v.GetInt("conversation.idle_ttl_mins"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	return cfg, nil
}
