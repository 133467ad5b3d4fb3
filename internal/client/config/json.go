package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/couplediaries/couplediaries/internal/flagx"
	"github.com/couplediaries/couplediaries/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current values untouched.
type JsonConfig struct {
	ServerEndpointAddr       *string         `json:"server_endpoint_addr"`
	DataDir                  *string         `json:"data_dir"`
	VerificationPollInterval *timex.Duration `json:"verification_poll_interval"`
	GuardCooldown            *timex.Duration `json:"guard_cooldown"`
	CountdownInterval        *timex.Duration `json:"countdown_interval"`
	RequestTimeout           *timex.Duration `json:"request_timeout"`
	WeatherAPIKey            *string         `json:"weather_api_key"`
	WeatherBaseURL           *string         `json:"weather_base_url"`
	LogLevel                 *string         `json:"log_level"`
	LogFormat                *string         `json:"log_format"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}

// parseJson overlays cfg with the file named by -c / -config, if any.
// Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.DataDir, jc.DataDir)
	setDuration(&cfg.VerificationPollInterval, jc.VerificationPollInterval)
	setDuration(&cfg.GuardCooldown, jc.GuardCooldown)
	setDuration(&cfg.CountdownInterval, jc.CountdownInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setString(&cfg.WeatherAPIKey, jc.WeatherAPIKey)
	setString(&cfg.WeatherBaseURL, jc.WeatherBaseURL)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
}
