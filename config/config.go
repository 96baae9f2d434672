package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string
	Location  string

	// Server
	Port  string
	Debug bool

	// Gemini Model
	GeminiModel string

	// Timeouts and limits
	GeminiTimeoutSeconds int
	MaxListResults       int

	// Authentication
	JWTSecret      string
	JWTExpiryHours int

	// Cloud Storage
	UploadBucketName string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),
		Location:  getEnv("LOCATION", "us-central1"),

		// Server
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		// Gemini Model
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		// Timeouts and limits
		GeminiTimeoutSeconds: getEnvInt("GEMINI_TIMEOUT_SECONDS", 30),
		MaxListResults:       getEnvInt("MAX_LIST_RESULTS", 500),

		// Authentication
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		// Cloud Storage
		UploadBucketName: getEnv("UPLOAD_BUCKET_NAME", ""),
	}

	return cfg
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	// ProjectID is required for Firestore and Vertex AI
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Firestore and Vertex AI"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
