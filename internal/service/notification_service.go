package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/civic-portal/appeal-service/internal/config"
	"github.com/civic-portal/appeal-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
// Delivery is fire-and-forget: failures never roll back the state change.
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
	n.dispatcher.Subscribe(events.EventAppealSubmitted, n.handleAppealSubmitted)
	n.dispatcher.Subscribe(events.EventAppealStatusChanged, n.handleAppealStatusChanged)
	n.dispatcher.Subscribe(events.EventAppealPriorityChanged, n.handleAppealPriorityChanged)
	n.dispatcher.Subscribe(events.EventAppealAssigned, n.handleAppealAssigned)
}

func (n *NotificationService) handleAppealSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("AppealSubmitted", zap.String("tracking_number", event.TrackingNumber), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAppealStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("AppealStatusChanged", zap.String("tracking_number", event.TrackingNumber), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAppealPriorityChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("AppealPriorityChanged", zap.String("tracking_number", event.TrackingNumber), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAppealAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("AppealAssigned", zap.String("tracking_number", event.TrackingNumber), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("tracking_number", event.TrackingNumber),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("tracking_number", event.TrackingNumber),
		zap.String("event_type", string(event.Type)))
}
