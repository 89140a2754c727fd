package config

import "github.com/cockroachdb/errors"

// Config holds application configuration.
type Config struct {
	// Environment is the deployment environment (development, production).
	Environment string
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// Session holds session store and cookie configuration.
	Session SessionConfig
	// CORS holds cross-origin configuration.
	CORS CORSConfig
	// Seed holds startup seeding configuration.
	Seed SeedConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	env := GetEnv("APP_ENV", "development")
	return Config{
		Environment: env,
		Server:      LoadServerConfigFromEnv(),
		Logger:      LoadLoggerConfigFromEnv(),
		Session:     LoadSessionConfigFromEnv(env == "production"),
		CORS:        LoadCORSConfigFromEnv(),
		Seed:        LoadSeedConfigFromEnv(),
		GinMode:     GetEnv("GIN_MODE", "release"),
	}
}

// IsProduction reports whether the application runs in production.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return errors.Wrap(err, "server config validation failed")
	}

	if err := c.Logger.Validate(); err != nil {
		return errors.Wrap(err, "logger config validation failed")
	}

	if err := c.Session.Validate(); err != nil {
		return errors.Wrap(err, "session config validation failed")
	}

	if err := c.Seed.Validate(); err != nil {
		return errors.Wrap(err, "seed config validation failed")
	}

	validGinModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validGinModes[c.GinMode] {
		return errors.Newf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}

	return nil
}
