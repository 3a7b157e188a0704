package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	AllowedOrigins []string
	RateLimit      string

	// Provider settings
	ProviderHTTPTimeout     time.Duration
	CurrencyBeaconBaseURL   string
	CurrencyBeaconAPIKey    string
	ExchangeRateHostBaseURL string
	ExchangeRateHostAPIKey  string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("PROVIDER_HTTP_TIMEOUT", "10s")
	viper.SetDefault("CURRENCY_BEACON_BASE_URL", "https://api.currencybeacon.com/v1")
	viper.SetDefault("CURRENCY_BEACON_API_KEY", "")
	viper.SetDefault("EXCHANGE_RATE_HOST_BASE_URL", "https://api.exchangerate.host")
	viper.SetDefault("EXCHANGE_RATE_HOST_API_KEY", "")

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

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	timeoutStr := viper.GetString("PROVIDER_HTTP_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		if timeoutStr != "" {
			log.Printf("Warning: Invalid value for PROVIDER_HTTP_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout.String())
		}
	}
	cfg.ProviderHTTPTimeout = timeout

	cfg.CurrencyBeaconBaseURL = viper.GetString("CURRENCY_BEACON_BASE_URL")
	cfg.CurrencyBeaconAPIKey = viper.GetString("CURRENCY_BEACON_API_KEY")
	cfg.ExchangeRateHostBaseURL = viper.GetString("EXCHANGE_RATE_HOST_BASE_URL")
	cfg.ExchangeRateHostAPIKey = viper.GetString("EXCHANGE_RATE_HOST_API_KEY")

	if cfg.CurrencyBeaconAPIKey == "" {
		log.Println("Warning: CURRENCY_BEACON_API_KEY not set. CurrencyBeacon fetches will fail.")
	}
	if cfg.ExchangeRateHostAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_HOST_API_KEY not set. ExchangeRateHost fetches will fail.")
	}

	return cfg, nil
}
