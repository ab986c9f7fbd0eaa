package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Risk monitor tuning
	MonitorInterval    time.Duration
	MonitorWindow      time.Duration
	HighValueThreshold decimal.Decimal
	FrequentTxnLimit   int64

	// Rate limit in ulule/limiter format, e.g. "100-M" for 100 req/minute
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "banking-system")
	viper.SetDefault("MONITOR_INTERVAL", "5m")
	viper.SetDefault("MONITOR_WINDOW", "1h")
	viper.SetDefault("HIGH_VALUE_THRESHOLD", "100000")
	viper.SetDefault("FREQUENT_TXN_LIMIT", 5)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	threshold, err := decimal.NewFromString(viper.GetString("HIGH_VALUE_THRESHOLD"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTExpiryDuration:  viper.GetDuration("JWT_EXPIRY_DURATION"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		MonitorInterval:    viper.GetDuration("MONITOR_INTERVAL"),
		MonitorWindow:      viper.GetDuration("MONITOR_WINDOW"),
		HighValueThreshold: threshold,
		FrequentTxnLimit:   viper.GetInt64("FREQUENT_TXN_LIMIT"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
	}
	return cfg, nil
}
