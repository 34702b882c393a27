package notification

import (
	"context"
	"sync"
	"time"

	"clinicbook-service/internal/app/contracts"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	notificationPublisherInstance contracts.NotificationPublisher
	onceNotificationPublisher     sync.Once
)

type bookingEvent struct {
	Event     string    `json:"event"`
	BookingID string    `json:"booking_id,omitempty"`
	OrderID   string    `json:"order_id,omitempty"`
	DraftID   string    `json:"draft_id"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type rabbitMQPublisher struct {
	Connection *amqp091.Connection
	QueueName  string
	Log        *zap.Logger
}

func NewRabbitMQPublisher(connection *amqp091.Connection, queueName string, logger *zap.Logger) contracts.NotificationPublisher {
	onceNotificationPublisher.Do(func() {
		instance := &rabbitMQPublisher{
			Connection: connection,
			QueueName:  queueName,
			Log:        logger,
		}
		notificationPublisherInstance = instance
	})
	return notificationPublisherInstance
}

func (p *rabbitMQPublisher) PublishBookingConfirmed(ctx context.Context, bookingID, draftID string) error {
	return p.publish(ctx, bookingEvent{
		Event:     constvars.NotificationEventBookingConfirmed,
		BookingID: bookingID,
		DraftID:   draftID,
		Timestamp: time.Now(),
	})
}

func (p *rabbitMQPublisher) PublishPaymentFailed(ctx context.Context, orderID, draftID, reason string) error {
	return p.publish(ctx, bookingEvent{
		Event:     constvars.NotificationEventPaymentFailed,
		OrderID:   orderID,
		DraftID:   draftID,
		Reason:    reason,
		Timestamp: time.Now(),
	})
}

func (p *rabbitMQPublisher) publish(ctx context.Context, event bookingEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("rabbitMQPublisher.publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event.Event),
		zap.String(constvars.LoggingQueueKey, p.QueueName),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	channel, err := p.Connection.Channel()
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.QueueName)
	}
	defer channel.Close()

	_, err = channel.QueueDeclare(p.QueueName, true, false, false, false, nil)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.QueueName)
	}

	err = channel.PublishWithContext(ctx, "", p.QueueName, false, false, amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.QueueName)
	}

	p.Log.Info("rabbitMQPublisher.publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event.Event),
	)
	return nil
}
