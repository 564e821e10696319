package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisWorkerDB    int    `mapstructure:"REDIS_WORKER_DB"`
	RedisRoleCacheDB int    `mapstructure:"REDIS_ROLE_CACHE_DB"`

	// Stripe.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Referral fee policy.
	ReferralFeePercent int `mapstructure:"REFERRAL_FEE_PERCENT"`
	// ReferralFeeTTLMin bounds how long a pending fee holds the selection
	// lock. Zero disables the expiry sweep entirely.
	ReferralFeeTTLMin int `mapstructure:"REFERRAL_FEE_TTL_MIN"`

	// Capability (role) service.
	CapabilityServiceURL  string `mapstructure:"CAPABILITY_SERVICE_URL"`
	CapabilityCacheTTLSec int    `mapstructure:"CAPABILITY_CACHE_TTL_SEC"`

	// Cloudinary for request photos.
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`

	// Checkout redirect targets handed to the gateway.
	CheckoutSuccessURL string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string `mapstructure:"CHECKOUT_CANCEL_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_WORKER_DB", 1)
	viper.SetDefault("REDIS_ROLE_CACHE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "doneez")
	viper.SetDefault("REFERRAL_FEE_PERCENT", 10)
	viper.SetDefault("REFERRAL_FEE_TTL_MIN", 0)
	viper.SetDefault("CAPABILITY_CACHE_TTL_SEC", 300)
	viper.SetDefault("CHECKOUT_SUCCESS_URL", "https://app.doneez.example/payments/success")
	viper.SetDefault("CHECKOUT_CANCEL_URL", "https://app.doneez.example/payments/cancel")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
