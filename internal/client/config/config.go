package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Couple Diaries client.
type Config struct {
	ServerEndpointAddr       string        `envconfig:"SERVER_ENDPOINT_ADDR"`
	DataDir                  string        `envconfig:"DATA_DIR"`
	VerificationPollInterval time.Duration `envconfig:"VERIFICATION_POLL_INTERVAL"`
	GuardCooldown            time.Duration `envconfig:"GUARD_COOLDOWN"`
	CountdownInterval        time.Duration `envconfig:"COUNTDOWN_INTERVAL"`
	RequestTimeout           time.Duration `envconfig:"REQUEST_TIMEOUT"`
	WeatherAPIKey            string        `envconfig:"WEATHER_API_KEY"`
	WeatherBaseURL           string        `envconfig:"WEATHER_BASE_URL"`
	LogLevel                 string        `envconfig:"LOG_LEVEL"`
	LogFormat                string        `envconfig:"LOG_FORMAT"`
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".couplediaries"
	}
	return filepath.Join(home, ".couplediaries")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DataDir = defaultDataDir()
	c.VerificationPollInterval = 3 * time.Second
	c.GuardCooldown = 2 * time.Second
	c.CountdownInterval = time.Minute
	c.RequestTimeout = 10 * time.Second
	c.WeatherBaseURL = "https://api.openweathermap.org"
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// DatabasePath is the sqlite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "client.db")
}

// PhotosDir is where card photos are moved to.
func (c *Config) PhotosDir() string {
	return filepath.Join(c.DataDir, "photos")
}

// LoadConfig applies defaults, then JSON, environment and flags in that
// order; later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
