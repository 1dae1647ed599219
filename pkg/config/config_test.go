package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("PORT", "3001")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("GUILD_ID", "995574131191984169")

	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}
	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}
	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}
	if config.GuildID != "995574131191984169" {
		t.Errorf("GuildID = %v, want %v", config.GuildID, "995574131191984169")
	}
}

func TestLoadWithoutToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	resetForTesting()

	if _, err := Load(); err == nil {
		t.Error("Load() should fail when BOT_TOKEN is missing")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}
	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", time.Minute},
		{"90s", 90 * time.Second},
		{"0", 0},
		{"soon", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.raw)
			if got := getDuration("TEST_DURATION", time.Minute); got != tt.want {
				t.Errorf("getDuration(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsProd(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	resetForTesting()
	if !Get().IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	t.Setenv("ENVIRONMENT", "dev")
	resetForTesting()
	if Get().IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}
}

func TestGet(t *testing.T) {
	resetForTesting()

	config := Get()
	if config == nil {
		t.Fatal("Get() returned nil")
	}
	if config2 := Get(); config != config2 {
		t.Error("Get() should return the same config on subsequent calls")
	}
}

func TestDefaultValues(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "DATA_DIR", "LOGS_DIR", "DB_NAME", "MQTT_PORT", "MONGODB_URL", "MQTT_HOST", "MEMORY_REPORT_INTERVAL"} {
		t.Setenv(key, "")
	}
	resetForTesting()
	config := Get()

	if config.Port != "10000" {
		t.Errorf("Port default = %v, want %v", config.Port, "10000")
	}
	if config.Environment != "dev" {
		t.Errorf("Environment default = %v, want %v", config.Environment, "dev")
	}
	if config.DataDir != "." {
		t.Errorf("DataDir default = %v, want %v", config.DataDir, ".")
	}
	if config.DBName != "TambayanBot" {
		t.Errorf("DBName default = %v, want %v", config.DBName, "TambayanBot")
	}
	if config.MQTTPort != "1883" {
		t.Errorf("MQTTPort default = %v, want %v", config.MQTTPort, "1883")
	}
	if config.MemoryReportInterval != time.Minute {
		t.Errorf("MemoryReportInterval default = %v, want %v", config.MemoryReportInterval, time.Minute)
	}
	if config.HasMongo() || config.HasMQTT() {
		t.Error("journal sinks should be disabled by default")
	}
}

func TestDataPath(t *testing.T) {
	c := &Config{DataDir: "data"}
	if got, want := c.DataPath(BlacklistFile), filepath.Join("data", "blacklist.json"); got != want {
		t.Errorf("DataPath() = %v, want %v", got, want)
	}
}
