package main

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/ByteWise-Cookie/llm-observability/internal/config"
	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
	"github.com/ByteWise-Cookie/llm-observability/internal/http"
	"github.com/ByteWise-Cookie/llm-observability/internal/http/middleware"
	"github.com/ByteWise-Cookie/llm-observability/internal/observability"
	"github.com/ByteWise-Cookie/llm-observability/internal/provider/echo"
	"github.com/ByteWise-Cookie/llm-observability/internal/provider/openai"
	"github.com/ByteWise-Cookie/llm-observability/internal/provider/registry"
	scoreredis "github.com/ByteWise-Cookie/llm-observability/internal/scoreindex/redis"
	"github.com/ByteWise-Cookie/llm-observability/internal/sink/datadog"
	"github.com/ByteWise-Cookie/llm-observability/internal/sink/logsink"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Service identity
	if err := container.Provide(func(cfg *config.ServiceConfig) domain.ServiceIdentity {
		return domain.ServiceIdentity{
			ModelName:   cfg.ModelName,
			ServiceName: cfg.ServiceName,
			Environment: cfg.Environment,
		}
	}); err != nil {
		log.Fatalf("Failed to provide service identity: %v", err)
	}

	// Provider Registry
	if err := container.Provide(func() domain.ProviderRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Active model provider: register everything available, then select
	// the configured one.
	if err := container.Provide(func(cfg *config.Config, reg domain.ProviderRegistry) (domain.ModelProvider, error) {
		ctx := context.Background()

		if err := reg.Register(ctx, echo.NewProvider()); err != nil {
			return nil, fmt.Errorf("failed to register echo provider: %w", err)
		}

		if cfg.OpenAI.APIKey != "" {
			provider, err := openai.NewProvider(cfg.OpenAI, cfg.Service.ModelName)
			if err != nil {
				return nil, fmt.Errorf("failed to build OpenAI provider: %w", err)
			}
			if err := reg.Register(ctx, provider); err != nil {
				return nil, fmt.Errorf("failed to register OpenAI provider: %w", err)
			}
		}

		provider, err := reg.Get(ctx, cfg.Service.Provider)
		if err != nil {
			return nil, fmt.Errorf("active provider %q not available: %w", cfg.Service.Provider, err)
		}

		return provider, nil
	}); err != nil {
		log.Fatalf("Failed to provide model provider: %v", err)
	}

	// Telemetry sinks: Datadog when credentials are configured, local
	// logging sinks otherwise.
	if err := container.Provide(func(cfg *config.Config) domain.MetricsSink {
		if cfg.Datadog.Enabled() {
			return datadog.NewMetricsSink(cfg.Datadog, cfg.Service.ServiceName)
		}
		return logsink.NewMetricsSink()
	}); err != nil {
		log.Fatalf("Failed to provide metrics sink: %v", err)
	}
	if err := container.Provide(func(cfg *config.Config) domain.LogSink {
		if cfg.Datadog.Enabled() {
			return datadog.NewLogsSink(cfg.Datadog, cfg.Service.ServiceName, cfg.Service.Environment)
		}
		return logsink.NewLogSink()
	}); err != nil {
		log.Fatalf("Failed to provide log sink: %v", err)
	}

	// Optional score index
	if err := container.Provide(func(cfg *config.Config) domain.ScoreIndex {
		if !cfg.Redis.Enabled() {
			return nil
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return scoreredis.NewScoreIndex(client)
	}); err != nil {
		log.Fatalf("Failed to provide score index: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewSelfConfidenceEstimator); err != nil {
		log.Fatalf("Failed to provide confidence estimator: %v", err)
	}
	if err := container.Provide(domain.NewTelemetryBuilder); err != nil {
		log.Fatalf("Failed to provide telemetry builder: %v", err)
	}
	if err := container.Provide(domain.NewTelemetryEmitter); err != nil {
		log.Fatalf("Failed to provide telemetry emitter: %v", err)
	}
	if err := container.Provide(domain.NewOrchestrator); err != nil {
		log.Fatalf("Failed to provide orchestrator: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
