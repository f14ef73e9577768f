// Package config reads all service configuration from the environment.
package config

import (
	"os"
	"strconv"
)

// AIModels defines which OpenAI models to use for different tasks
type AIModels struct {
	// Questions is for interview question candidate generation (needs to be fast)
	Questions string `json:"questions"`

	// TOC is for table-of-contents generation (one-time per book, quality matters)
	TOC string `json:"toc"`

	// Draft is for chapter draft generation (long output, quality over speed)
	Draft string `json:"draft"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string   `json:"-"` // Never serialize
	BaseURL   string   `json:"baseUrl,omitempty"`
	Models    AIModels `json:"models"`
	TimeoutMS int      `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"), // Empty means the official endpoint
		Models: AIModels{
			Questions: getEnvOrDefault("OPENAI_MODEL_QUESTIONS", "gpt-4o-mini"),
			TOC:       getEnvOrDefault("OPENAI_MODEL_TOC", "gpt-4o"),
			Draft:     getEnvOrDefault("OPENAI_MODEL_DRAFT", "gpt-4o"),
		},
		TimeoutMS: getEnvIntOrDefault("OPENAI_TIMEOUT_MS", 30000),
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ServerConfig holds the HTTP server and backing-store settings
type ServerConfig struct {
	Port     string
	MongoURI string
	MongoDB  string
	RedisURI string

	AuthorUsername string
	AuthorPassword string
	JWTSecret      string

	// RateLimitPerMinute caps authenticated requests per author per minute.
	RateLimitPerMinute int

	// RateLimitGeneratePerMinute caps the expensive AI generation endpoints
	// separately.
	RateLimitGeneratePerMinute int
}

// DefaultServerConfig reads the server configuration from the environment
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:                       getEnvOrDefault("PORT", "8080"),
		MongoURI:                   getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:                    getEnvOrDefault("MONGO_DB", "bookforge"),
		RedisURI:                   getEnvOrDefault("REDIS_URI", "localhost:6379"),
		AuthorUsername:             getEnvOrDefault("AUTHOR_USERNAME", "author"),
		AuthorPassword:             getEnvOrDefault("AUTHOR_PASSWORD", "change-me"),
		JWTSecret:                  getEnvOrDefault("JWT_SECRET", "super-secret-key-change-in-production"),
		RateLimitPerMinute:         getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitGeneratePerMinute: getEnvIntOrDefault("RATE_LIMIT_GENERATE_PER_MINUTE", 10),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
