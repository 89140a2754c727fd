package config

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Session store backends.
const (
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
)

// SessionConfig holds session storage and cookie configuration.
type SessionConfig struct {
	// Store selects the backend (database, redis).
	Store string
	// TTL is the lifetime of a session and the cookie max age.
	TTL time.Duration
	// CookieName is the name of the session cookie.
	CookieName string
	// CookieSecure marks the cookie Secure.
	CookieSecure bool
	// RedisAddr is the host:port of the Redis server.
	RedisAddr string
	// RedisPassword is the optional Redis password.
	RedisPassword string
	// RedisDB is the Redis logical database.
	RedisDB int
	// RedisPrefix namespaces session keys.
	RedisPrefix string
}

// LoadSessionConfigFromEnv loads session configuration. Cookies default to
// Secure in production.
func LoadSessionConfigFromEnv(production bool) SessionConfig {
	return SessionConfig{
		Store:         GetEnv("SESSION_STORE", SessionStoreDatabase),
		TTL:           GetEnvDuration("SESSION_TTL", 24*time.Hour),
		CookieName:    GetEnv("SESSION_COOKIE_NAME", "sid"),
		CookieSecure:  GetEnvBool("SESSION_COOKIE_SECURE", production),
		RedisAddr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("REDIS_DB", 0),
		RedisPrefix:   GetEnv("REDIS_SESSION_PREFIX", "sess:"),
	}
}

// Validate validates session configuration.
func (c SessionConfig) Validate() error {
	if c.Store != SessionStoreDatabase && c.Store != SessionStoreRedis {
		return errors.Newf("invalid SESSION_STORE: %s (must be: database, redis)", c.Store)
	}
	if c.TTL <= 0 {
		return errors.New("session TTL must be greater than 0")
	}
	if c.CookieName == "" {
		return errors.New("session cookie name must not be empty")
	}
	if c.Store == SessionStoreRedis && c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required for the redis session store")
	}
	return nil
}

// MaxAgeSeconds returns the cookie max age.
func (c SessionConfig) MaxAgeSeconds() int {
	return int(c.TTL / time.Second)
}
