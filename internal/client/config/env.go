package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix is prepended to every variable name, e.g.
// COUPLEDIARIES_CLIENT_SERVER_ENDPOINT_ADDR.
const EnvPrefix = "COUPLEDIARIES_CLIENT"

func parseEnv(cfg *Config) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}
