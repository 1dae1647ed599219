// Package config provides configuration management for the bot.
// It loads environment variables (and an optional .env file) and makes them
// available throughout the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	BotToken string
	ClientID string
	GuildID  string

	// Community channels and roles
	SupportChannelID string
	SupportRoleID    string
	WelcomeChannelID string

	// Storage
	DataDir string
	LogsDir string

	// Web Server
	Port string

	// Environment
	Environment string

	// Webhooks
	ErrorWebhook string
	LogsWebhook  string

	// Journal sinks
	MongoDBURL   string
	DBName       string
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string

	// Runtime
	MemoryReportInterval time.Duration
}

var (
	Version   = "Dev-Local"
	BuildTime = "Today"
)

// File names of the JSON documents kept in DataDir.
const (
	AFKConfigFile     = "afk_config.json"
	WelcomeConfigFile = "welcome_config.json"
	BlacklistFile     = "blacklist.json"
)

var (
	cfg     *Config
	cfgOnce sync.Once
)

// resetForTesting resets the configuration for testing purposes.
func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

func loadConfig() {
	// A missing .env is fine; the hosting platform injects variables directly.
	_ = godotenv.Load()

	cfg = &Config{
		BotToken: getEnv("BOT_TOKEN", ""),
		ClientID: getEnv("CLIENT_ID", ""),
		GuildID:  getEnv("GUILD_ID", ""),

		SupportChannelID: getEnv("SUPPORT_CHANNEL_ID", ""),
		SupportRoleID:    getEnv("SUPPORT_ROLE_ID", ""),
		WelcomeChannelID: getEnv("WELCOME_CHANNEL_ID", "996579657648455720"),

		DataDir: getEnv("DATA_DIR", "."),
		LogsDir: getEnv("LOGS_DIR", "logs"),

		Port: getEnv("PORT", "10000"),

		Environment: getEnv("ENVIRONMENT", "dev"),

		ErrorWebhook: getEnv("ERROR_WEBHOOK", ""),
		LogsWebhook:  getEnv("LOGS_WEBHOOK", ""),

		MongoDBURL:   getEnv("MONGODB_URL", ""),
		DBName:       getEnv("DB_NAME", "TambayanBot"),
		MQTTHost:     getEnv("MQTT_HOST", ""),
		MQTTPort:     getEnv("MQTT_PORT", "1883"),
		MQTTUser:     getEnv("MQTT_USER", ""),
		MQTTPassword: getEnv("MQTT_PASSWORD", ""),

		MemoryReportInterval: getDuration("MEMORY_REPORT_INTERVAL", time.Minute),
	}
}

// Load initializes the configuration from environment variables
func Load() (*Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, cfg.Validate()
}

// Get returns the current configuration
func Get() *Config {
	cfgOnce.Do(loadConfig)
	return cfg
}

// Validate reports settings the bot cannot start without.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a Go duration ("90s", "2m") and falls back to the
// default when the variable is unset or malformed.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}

// IsProd returns true if the environment is production
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// DataPath joins a file name onto the data directory.
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

// HasMongo reports whether the journal should be persisted to MongoDB.
func (c *Config) HasMongo() bool {
	return c.MongoDBURL != ""
}

// HasMQTT reports whether journal events should be published over MQTT.
func (c *Config) HasMQTT() bool {
	return c.MQTTHost != ""
}
