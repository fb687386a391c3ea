// internal/config/config.go

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string
	LogLevel      string

	// MongoDB configuration
	MongoURI string

	// Perplexity configuration
	PerplexityAPIKey   string
	PerplexityEndpoint string

	// NOAA endpoints (overridable for testing)
	NOAAPredictionsEndpoint string
	NOAAMetadataEndpoint    string

	// S3 interaction log configuration
	S3BucketName string
	S3Region     string
	S3Endpoint   string

	// Rate limiting
	RatePerSecond int
	RateBurst     int
}

// Load reads configuration from environment variables, pulling in a .env
// file first if one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		MongoURI: getEnv("MONGODB_URI", ""),

		PerplexityAPIKey:   getEnv("PERPLEXITY_API_KEY", ""),
		PerplexityEndpoint: getEnv("PERPLEXITY_ENDPOINT", "https://api.perplexity.ai"),

		NOAAPredictionsEndpoint: getEnv("NOAA_API_ENDPOINT", "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"),
		NOAAMetadataEndpoint:    getEnv("NOAA_METADATA_ENDPOINT", "https://api.tidesandcurrents.noaa.gov/mdapi/prod/webapi"),

		S3BucketName: getEnv("BUCKET_NAME", ""),
		S3Region:     getEnv("AWS_REGION", ""),
		S3Endpoint:   getEnv("AWS_ENDPOINT_URL_S3", ""),

		RatePerSecond: getEnvInt("RATE_PER_SECOND", 1),
		RateBurst:     getEnvInt("RATE_BURST", 5),
	}
}

// InteractionLogEnabled reports whether the S3 interaction log is configured.
func (c *Config) InteractionLogEnabled() bool {
	return c.S3BucketName != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
