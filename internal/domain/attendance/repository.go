package attendance

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Record, error)
	GetByMemberAndDate(ctx context.Context, memberID, date string) (Record, error)
	Create(ctx context.Context, record Record) (Record, error)
	SetCheckOut(ctx context.Context, id string, record Record) error
	SetValidationStatus(ctx context.Context, id string, status ValidationStatus, notes *string) error

	// Find returns the records matching the filter, newest date first.
	Find(ctx context.Context, filter Filter) ([]Record, error)

	// Count counts matching records without materializing rows.
	Count(ctx context.Context, filter Filter) (int64, error)

	// MemberIDsWithRecordOn returns the subset of memberIDs that already
	// have a record for the given date. Used by the auto-absent job.
	MemberIDsWithRecordOn(ctx context.Context, memberIDs []string, date string) ([]string, error)
}
