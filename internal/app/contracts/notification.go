package contracts

import "context"

// NotificationPublisher emits booking lifecycle events to the message broker.
// Publishing is best effort; a broker failure never fails the booking.
type NotificationPublisher interface {
	PublishBookingConfirmed(ctx context.Context, bookingID, draftID string) error
	PublishPaymentFailed(ctx context.Context, orderID, draftID, reason string) error
}
