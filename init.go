package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tournevent/otpravka/internal/config"
	"github.com/tournevent/otpravka/internal/telemetry"
	"github.com/tournevent/otpravka/pkg/otpravka"
	"github.com/tournevent/otpravka/pkg/otpravka/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func newClient(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer, reg prometheus.Registerer) (*otpravka.Client, error) {
	opts := []otpravka.Option{
		otpravka.WithLogger(logger),
		otpravka.WithTracer(tracer),
		otpravka.WithMetrics(otpravka.NewMetrics(reg)),
		otpravka.WithDebugLogging(cfg.Debug),
	}
	if cfg.UseMock {
		opts = append(opts, otpravka.WithHTTPClient(mock.NewDoer()))
	}
	return otpravka.New(cfg.ClientConfig(), opts...)
}

// logRequestCount reports how many API requests the invocation made.
func logRequestCount(logger *otelzap.Logger, gatherer prometheus.Gatherer) {
	families, err := gatherer.Gather()
	if err != nil {
		logger.Warn("Failed to gather client metrics", zap.Error(err))
		return
	}
	var requests float64
	for _, mf := range families {
		if mf.GetName() != "otpravka_client_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			requests += m.GetCounter().GetValue()
		}
	}
	logger.Debug("Finished", zap.Float64("requests", requests))
}
