package notification

import "context"

type Service interface {
	List(ctx context.Context, recipientID string, limit, offset int) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)

	// MarkRead fails with ErrNotRecipient when the notification belongs to
	// a different member.
	MarkRead(ctx context.Context, recipientID, notificationID string) error

	// Notify stores a notification and pushes it to the recipient's open
	// event streams.
	Notify(ctx context.Context, n Notification) error

	// NotifyLateSpike publishes the organization-wide late spike alert to
	// every active member, at most once per organization per day.
	NotifyLateSpike(ctx context.Context, organizationID string, currentLate, previousLate int64, percentChange int) error
}
