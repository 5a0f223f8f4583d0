package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	KafkaBroker string `mapstructure:"KAFKA_BROKER"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Shared secret for the employee-sync webhook. When empty, signature
	// verification is skipped rather than failed.
	SyncWebhookSecret string `mapstructure:"SYNC_WEBHOOK_SECRET"`
}

// Load reads configuration from environment variables with sane local
// defaults. Secrets have no defaults on purpose.
func Load() (config Config, err error) {
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "carehub")
	viper.SetDefault("DB_PASSWORD", "carehub")
	viper.SetDefault("DB_NAME", "carehub")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("KAFKA_BROKER", "localhost:9092")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("SYNC_WEBHOOK_SECRET", "")

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	return
}
