package services

import (
	"context"
	"encoding/json"

	aws_pkg "github.com/Soukthavilay/qr-order/pkg/aws"
	"go.uber.org/zap"
)

// eventSink publishes events and counts metrics, both best effort.
type eventSink struct {
	publisher aws_pkg.SNSPublisher
	topic     string
	metrics   aws_pkg.MetricsRecorder
	logger    *zap.Logger
}

func (s eventSink) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher == nil || s.topic == "" {
		s.logger.Warn("Event publisher not configured, skipping event", zap.String("event", eventType))
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Failed to marshal event", zap.String("event", eventType), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, s.topic, body); err != nil {
		s.logger.Error("Failed to publish event", zap.String("event", eventType), zap.Error(err))
		return
	}
	s.logger.Debug("Event published", zap.String("event", eventType))
}

func (s eventSink) count(ctx context.Context, metric string, dims map[string]string) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.RecordCount(ctx, metric, dims); err != nil {
		s.logger.Warn("Failed to record metric", zap.String("metric", metric), zap.Error(err))
	}
}

// EventOptions wires the optional event bus and metrics into a service.
// The zero value disables both.
type EventOptions struct {
	Publisher aws_pkg.SNSPublisher
	Topic     string
	Metrics   aws_pkg.MetricsRecorder
}

func (o EventOptions) sink(logger *zap.Logger) eventSink {
	return eventSink{publisher: o.Publisher, topic: o.Topic, metrics: o.Metrics, logger: logger}
}
