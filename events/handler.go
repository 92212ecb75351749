// Package events feeds kitchen status updates into the order store and
// publishes restaurant events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Soukthavilay/qr-order/models"
	"go.uber.org/zap"
)

// Applier applies a kitchen status event to the order store.
type Applier interface {
	ApplyKitchenEvent(ctx context.Context, event models.KitchenEvent) error
}

// Source delivers kitchen events until ctx is cancelled.
type Source interface {
	Run(ctx context.Context) error
}

// Handler decodes kitchen events and applies them. Handle returns an error
// only for events worth retrying.
type Handler struct {
	applier Applier
	logger  *zap.Logger
}

func NewHandler(applier Applier, logger *zap.Logger) *Handler {
	return &Handler{applier: applier, logger: logger}
}

func (h *Handler) Handle(ctx context.Context, body []byte) error {
	var event models.KitchenEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Warn("Dropping malformed kitchen event", zap.Error(err))
		return nil
	}

	err := h.applier.ApplyKitchenEvent(ctx, event)
	switch {
	case err == nil:
		h.logger.Info("Kitchen event applied",
			zap.String("order_id", event.OrderID),
			zap.String("status", string(event.Status)))
		return nil
	case errors.Is(err, models.ErrInvalidTransition):
		h.logger.Warn("Ignoring kitchen event with invalid transition",
			zap.String("order_id", event.OrderID),
			zap.String("status", string(event.Status)))
		return nil
	default:
		return err
	}
}
