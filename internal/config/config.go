package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/ByteWise-Cookie/llm-observability/internal/provider/openai"
	"github.com/ByteWise-Cookie/llm-observability/internal/sink/datadog"
)

// Config represents the service configuration. It is constructed once at
// startup and read-only afterwards.
type Config struct {
	Server  ServerConfig
	Service ServiceConfig
	CORS    CORSConfig
	OpenAI  openai.Config
	Datadog datadog.Config
	Redis   RedisConfig
}

// ServiceConfig identifies the service and selects the model capability.
type ServiceConfig struct {
	Provider    string `env:"PROVIDER"     envDefault:"openai"`
	ModelName   string `env:"MODEL_NAME"   envDefault:"gpt-4o-mini"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"llm-observability-service"`
	Environment string `env:"ENVIRONMENT"  envDefault:"dev"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"PORT"                 envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// RedisConfig enables the optional score index when an address is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Enabled reports whether the score index should be wired.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*ServiceConfig
	*CORSConfig
	OpenAI  *openai.Config
	Datadog *datadog.Config
	*RedisConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.Service,
		&cfg.CORS,
		&cfg.OpenAI,
		&cfg.Datadog,
		&cfg.Redis,
	}
}
