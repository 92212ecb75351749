package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSource consumes kitchen events with a consumer group. Offsets are
// committed after every message, including those that failed.
type KafkaSource struct {
	reader  messageReader
	handler *Handler
	logger  *zap.Logger
}

func NewKafkaSource(brokers []string, topic, groupID string, handler *Handler, logger *zap.Logger) *KafkaSource {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 1e6, // 1MB
		MaxWait:  time.Second,
	})
	return &KafkaSource{reader: r, handler: handler, logger: logger}
}

func (s *KafkaSource) Run(ctx context.Context) error {
	s.logger.Info("Kafka kitchen consumer started")
	defer func() {
		if err := s.reader.Close(); err != nil {
			s.logger.Warn("Failed to close Kafka reader", zap.Error(err))
		}
	}()

	for {
		m, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				s.logger.Info("Kafka kitchen consumer stopped")
				return nil
			}
			return fmt.Errorf("fetch kafka message: %w", err)
		}

		if err := s.handler.Handle(ctx, m.Value); err != nil {
			s.logger.Error("Failed to apply kitchen event",
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
				zap.Error(err))
		}
		if err := s.reader.CommitMessages(ctx, m); err != nil {
			s.logger.Warn("Failed to commit Kafka offset", zap.Int64("offset", m.Offset), zap.Error(err))
		}
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to the topic named on each call.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}}
}

// Publish sends message to topic.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, message []byte) error {
	if topic == "" {
		return fmt.Errorf("empty topic")
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Topic: topic, Value: message}); err != nil {
		return fmt.Errorf("kafka publish failed for topic %s: %w", topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
