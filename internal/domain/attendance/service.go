package attendance

import "context"

type Service interface {
	// CreateRecord stores a manual attendance entry, pending validation.
	CreateRecord(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)

	GetByID(ctx context.Context, id string) (RecordResponse, error)
	List(ctx context.Context, organizationID string, filter Filter) ([]RecordResponse, error)

	// Validate approves or rejects a pending record and notifies the member.
	Validate(ctx context.Context, id string, reviewerID string, req ValidateRecordRequest) error

	// CheckInByCard handles a card swipe from an attendance device. An "in"
	// swipe creates today's record with a status derived from the cutoff
	// time; an "out" swipe closes it.
	CheckInByCard(ctx context.Context, organizationID string, req CardCheckInRequest) (RecordResponse, error)
}
