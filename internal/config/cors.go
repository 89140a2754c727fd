package config

// CORSConfig holds cross-origin resource sharing configuration.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to call the API with credentials.
	AllowedOrigins []string
	// Debug enables rs/cors debug logging.
	Debug bool
}

// LoadCORSConfigFromEnv loads CORS configuration from environment variables.
func LoadCORSConfigFromEnv() CORSConfig {
	return CORSConfig{
		AllowedOrigins: GetEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		Debug:          GetEnvBool("CORS_DEBUG", false),
	}
}
