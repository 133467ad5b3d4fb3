package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix is prepended to every variable name, e.g. COUPLEDIARIES_DATABASE_DSN.
const EnvPrefix = "COUPLEDIARIES"

// parseEnv overlays values from COUPLEDIARIES_* environment variables.
// Unset variables leave the current value untouched. A malformed value
// (for example an unparsable duration) panics, like the other layers.
func parseEnv(config *Config) {
	if err := envconfig.Process(EnvPrefix, config); err != nil {
		panic(err)
	}
}
