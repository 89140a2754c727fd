package config

import "github.com/cockroachdb/errors"

// SeedConfig holds startup seeding configuration.
type SeedConfig struct {
	// AdminUsername is the username of the admin ensured on startup.
	AdminUsername string
	// AdminPassword is the password given to a newly created admin.
	AdminPassword string
	// File is an optional YAML file with teams and matches.
	File string
}

// LoadSeedConfigFromEnv loads seeding configuration from environment variables.
func LoadSeedConfigFromEnv() SeedConfig {
	return SeedConfig{
		AdminUsername: GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: GetEnv("ADMIN_PASSWORD", "admin12345"),
		File:          GetEnv("SEED_FILE", ""),
	}
}

// Validate validates seeding configuration.
func (c SeedConfig) Validate() error {
	if c.AdminUsername == "" {
		return errors.New("ADMIN_USERNAME must not be empty")
	}
	if c.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD must not be empty")
	}
	return nil
}
