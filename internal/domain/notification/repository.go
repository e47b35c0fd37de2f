package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	CreateMany(ctx context.Context, ns []Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id string) error

	// ExistsForDay prevents duplicate digest notifications (one late-spike
	// alert per organization per day).
	ExistsForDay(ctx context.Context, organizationID string, t Type, date string) (bool, error)
}
