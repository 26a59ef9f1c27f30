package datadog

import (
	"context"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
)

// Config contains Datadog intake configuration. Both keys are required for
// submission; when either is missing the service falls back to the local log
// sinks instead.
type Config struct {
	APIKey string `env:"DATADOG_API_KEY"`
	AppKey string `env:"DATADOG_APP_KEY"`
	Site   string `env:"DATADOG_SITE" envDefault:"us5.datadoghq.com"`
}

// Enabled reports whether submissions to Datadog can be authenticated.
func (c Config) Enabled() bool {
	return c.APIKey != "" && c.AppKey != ""
}

// authContext attaches the API keys and site to the outgoing request context,
// the way the Datadog SDK expects its credentials.
func (c Config) authContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: c.APIKey},
		"appKeyAuth": {Key: c.AppKey},
	})

	return context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{
		"site": c.Site,
	})
}
