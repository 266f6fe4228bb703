package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Auth configuration for bearer-token verification
type AuthConfig struct {
	TokenSecret string
}

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Auth   AuthConfig
}

// Default configuration values
const (
	DefaultServerPort  = "5000"
	DefaultServerHost  = ""
	DefaultMongoURI    = "mongodb://localhost:27017/?retryWrites=true&w=majority"
	DefaultMongoDB     = "zapshift"
	DefaultTokenSecret = "zapshift-dev-secret"

	// Pagination defaults
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// New returns a new Config populated from the environment. A .env file in the
// working directory is loaded first if present.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("TOKEN_SECRET", DefaultTokenSecret),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
