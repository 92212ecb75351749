package events

import (
	"context"
	"errors"

	aws_pkg "github.com/Soukthavilay/qr-order/pkg/aws"
)

type poller interface {
	StartPolling(ctx context.Context, handler aws_pkg.MessageHandler) error
}

// SQSSource long-polls a queue of kitchen events. Events for unknown orders
// stay on the queue and come back after the visibility timeout.
type SQSSource struct {
	consumer poller
	handler  *Handler
}

func NewSQSSource(consumer *aws_pkg.SQSConsumer, handler *Handler) *SQSSource {
	return &SQSSource{consumer: consumer, handler: handler}
}

func (s *SQSSource) Run(ctx context.Context) error {
	err := s.consumer.StartPolling(ctx, func(ctx context.Context, body string) error {
		return s.handler.Handle(ctx, []byte(body))
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
