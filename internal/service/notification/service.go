package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/notification"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/daterange"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/sse"
	"github.com/google/uuid"
)

type NotificationServiceImpl struct {
	repo       notification.Repository
	memberRepo member.Repository
	hub        *sse.Hub
	now        func() time.Time
}

func NewNotificationService(repo notification.Repository, memberRepo member.Repository, hub *sse.Hub) notification.Service {
	return &NotificationServiceImpl{
		repo:       repo,
		memberRepo: memberRepo,
		hub:        hub,
		now:        time.Now,
	}
}

func toResponse(n notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *NotificationServiceImpl) List(ctx context.Context, recipientID string, limit, offset int) ([]notification.NotificationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.repo.ListByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(items))
	for i, n := range items {
		responses[i] = toResponse(n)
	}
	return responses, nil
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RecipientID != recipientID {
		return notification.ErrNotRecipient
	}
	if n.IsRead {
		return nil
	}
	return s.repo.MarkRead(ctx, notificationID)
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, n notification.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.hub.Publish(created.RecipientID, sse.Event{
		RecipientID: created.RecipientID,
		Event:       "notification",
		Data:        toResponse(created),
	})
	return nil
}

// NotifyLateSpike fans the alert out to every active member. The
// ExistsForDay guard keeps the hourly digest job from re-alerting within
// the same day.
func (s *NotificationServiceImpl) NotifyLateSpike(ctx context.Context, organizationID string, currentLate, previousLate int64, percentChange int) error {
	now := s.now().UTC()
	today := daterange.Format(now)

	exists, err := s.repo.ExistsForDay(ctx, organizationID, notification.TypeLateSpike, today)
	if err != nil {
		return fmt.Errorf("failed to check existing alert: %w", err)
	}
	if exists {
		return nil
	}

	memberIDs, err := s.memberRepo.ActiveIDs(ctx, organizationID)
	if err != nil {
		return fmt.Errorf("failed to resolve recipients: %w", err)
	}
	if len(memberIDs) == 0 {
		return nil
	}

	title := "Late arrivals are spiking"
	message := fmt.Sprintf("Late check-ins are up %d%% this month (%d vs %d last month).",
		percentChange, currentLate, previousLate)

	notifications := make([]notification.Notification, len(memberIDs))
	for i, memberID := range memberIDs {
		notifications[i] = notification.Notification{
			ID:             uuid.NewString(),
			OrganizationID: organizationID,
			RecipientID:    memberID,
			Type:           notification.TypeLateSpike,
			Title:          title,
			Message:        message,
			CreatedAt:      now,
		}
	}

	if err := s.repo.CreateMany(ctx, notifications); err != nil {
		return fmt.Errorf("failed to store alerts: %w", err)
	}

	for _, n := range notifications {
		s.hub.Publish(n.RecipientID, sse.Event{
			RecipientID: n.RecipientID,
			Event:       "notification",
			Data:        toResponse(n),
		})
	}
	return nil
}
