package datadog

import (
	"context"
	"fmt"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"

	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
)

const logSource = "llm-observability"

// LogsSink implements domain.LogSink on the Datadog logs intake API.
type LogsSink struct {
	api     *datadogV2.LogsApi
	config  Config
	service string
	env     string
}

// NewLogsSink creates a new logs sink.
func NewLogsSink(config Config, serviceName, environment string) *LogsSink {
	client := datadog.NewAPIClient(datadog.NewConfiguration())

	return &LogsSink{
		api:     datadogV2.NewLogsApi(client),
		config:  config,
		service: serviceName,
		env:     environment,
	}
}

// Submit sends the entries as one batch of log items. Attribute values are
// already strings, which is what the logs intake expects.
func (s *LogsSink) Submit(ctx context.Context, entries []domain.LogEntry) error {
	items := make([]datadogV2.HTTPLogItem, 0, len(entries))

	for _, entry := range entries {
		items = append(items, datadogV2.HTTPLogItem{
			Ddsource:             datadog.PtrString(logSource),
			Ddtags:               datadog.PtrString(fmt.Sprintf("env:%s,service:%s", s.env, s.service)),
			Hostname:             datadog.PtrString(s.service),
			Message:              entry.Message,
			Service:              datadog.PtrString(s.service),
			AdditionalProperties: entry.Attributes,
		})
	}

	_, _, err := s.api.SubmitLog(s.config.authContext(ctx), items)
	if err != nil {
		return fmt.Errorf("datadog log submit failed: %w", err)
	}

	return nil
}
