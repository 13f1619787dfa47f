package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/stormkid2009/restooo/internal/config"
	"github.com/stormkid2009/restooo/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventReservationCreated, n.handleReservationCreated)
	n.dispatcher.Subscribe(events.EventReservationCancelled, n.handleReservationCancelled)
}

func (n *NotificationService) handleReservationCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ReservationCreated", zap.String("reservation_id", event.ReservationID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReservationCancelled(ctx context.Context, event events.Event) error {
	n.logger.Info("ReservationCancelled", zap.String("reservation_id", event.ReservationID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("reservation_id", event.ReservationID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("reservation_id", event.ReservationID),
		zap.String("event_type", string(event.Type)))
}
