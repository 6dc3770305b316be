package config

import (
	"log"

	"github.com/spf13/viper"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Storage configuration. DriverFile keeps everything under DataDir;
	// the other drivers read DATABASE_URL.
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DataDir       string `mapstructure:"DATA_DIR"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	// Admin authentication. ADMIN_PASSWORD_HASH (bcrypt) wins over the
	// plain ADMIN_PASSWORD; with neither set, admin login always fails.
	AdminPassword     string `mapstructure:"ADMIN_PASSWORD"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration for the chat context cache. Optional: when
	// REDIS_ADDR is empty the in-memory store is used instead.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisChatDB   int    `mapstructure:"REDIS_CHAT_DB"`

	// Directory of static assets (booking page, chatbot widget). Empty
	// disables static serving.
	PublicDir string `mapstructure:"PUBLIC_DIR"`
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
	viper.SetDefault("STORAGE_DRIVER", DriverFile)
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("MONGO_DATABASE", "tavola")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CHAT_DB", 0)
	viper.SetDefault("PUBLIC_DIR", "")

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
