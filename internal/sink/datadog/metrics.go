// Package datadog submits telemetry to the Datadog intake APIs using the
// official SDK. Both sinks are consumed through the domain sink interfaces
// behind a best-effort boundary, so intake failures never reach a request's
// caller.
package datadog

import (
	"context"
	"fmt"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"

	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
)

// MetricsSink implements domain.MetricsSink on the Datadog metrics intake
// v2 API.
type MetricsSink struct {
	api     *datadogV2.MetricsApi
	config  Config
	service string
}

// NewMetricsSink creates a new metrics sink.
func NewMetricsSink(config Config, serviceName string) *MetricsSink {
	client := datadog.NewAPIClient(datadog.NewConfiguration())

	return &MetricsSink{
		api:     datadogV2.NewMetricsApi(client),
		config:  config,
		service: serviceName,
	}
}

// Submit sends one payload containing every series in the batch.
func (s *MetricsSink) Submit(ctx context.Context, series []domain.MetricSeries) error {
	payload := datadogV2.MetricPayload{
		Series: make([]datadogV2.MetricSeries, 0, len(series)),
	}

	for _, sr := range series {
		payload.Series = append(payload.Series, datadogV2.MetricSeries{
			Metric: sr.Metric,
			Type:   datadogV2.METRICINTAKETYPE_UNSPECIFIED.Ptr(),
			Points: []datadogV2.MetricPoint{
				{
					Timestamp: datadog.PtrInt64(sr.Timestamp),
					Value:     datadog.PtrFloat64(sr.Value),
				},
			},
			Resources: []datadogV2.MetricResource{
				{
					Name: datadog.PtrString(s.service),
					Type: datadog.PtrString("service"),
				},
			},
			Tags: sr.Tags,
		})
	}

	_, _, err := s.api.SubmitMetrics(s.config.authContext(ctx), payload)
	if err != nil {
		return fmt.Errorf("datadog metrics submit failed: %w", err)
	}

	return nil
}
