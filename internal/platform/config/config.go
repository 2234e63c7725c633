package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External exchange rate feed
	RateFeedBaseURL string
	RateFeedTimeout time.Duration

	// Upstream marketplace (product catalog) OAuth2 client credentials
	MarketplaceBaseURL      string `mapstructure:"MARKETPLACE_BASE_URL"`
	MarketplaceTokenURL     string `mapstructure:"MARKETPLACE_TOKEN_URL"`
	MarketplaceClientID     string `mapstructure:"MARKETPLACE_CLIENT_ID"`
	MarketplaceClientSecret string `mapstructure:"MARKETPLACE_CLIENT_SECRET"`

	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`

	// Rate limit in ulule/limiter notation, e.g. "100-M" for 100 req/min.
	RateLimit string `mapstructure:"RATE_LIMIT"`

	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "china-shop-app")
	viper.SetDefault("RATE_FEED_BASE_URL", "")
	viper.SetDefault("RATE_FEED_TIMEOUT", "3s")
	viper.SetDefault("MARKETPLACE_BASE_URL", "")
	viper.SetDefault("MARKETPLACE_TOKEN_URL", "")
	viper.SetDefault("MARKETPLACE_CLIENT_ID", "")
	viper.SetDefault("MARKETPLACE_CLIENT_SECRET", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	rateFeedTimeoutStr := viper.GetString("RATE_FEED_TIMEOUT")
	rateFeedTimeout, err := time.ParseDuration(rateFeedTimeoutStr)
	if err != nil {
		rateFeedTimeout = 3 * time.Second
		if rateFeedTimeoutStr != "" {
			log.Printf("Warning: Invalid value for RATE_FEED_TIMEOUT ('%s'). Defaulting to %s.\n", rateFeedTimeoutStr, rateFeedTimeout.String())
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateFeedBaseURL = viper.GetString("RATE_FEED_BASE_URL")
	cfg.RateFeedTimeout = rateFeedTimeout
	cfg.MarketplaceBaseURL = viper.GetString("MARKETPLACE_BASE_URL")
	cfg.MarketplaceTokenURL = viper.GetString("MARKETPLACE_TOKEN_URL")
	cfg.MarketplaceClientID = viper.GetString("MARKETPLACE_CLIENT_ID")
	cfg.MarketplaceClientSecret = viper.GetString("MARKETPLACE_CLIENT_SECRET")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.RateFeedBaseURL == "" {
		log.Println("Warning: RATE_FEED_BASE_URL not set. Rate lookups will use the degraded fallback.")
	}
	if cfg.MarketplaceBaseURL == "" {
		log.Println("Warning: MARKETPLACE_BASE_URL not set. Product lookups will not function.")
	}

	return cfg, nil
}
