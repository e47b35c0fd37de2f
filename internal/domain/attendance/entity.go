package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusExcused Status = "excused"
	StatusLeave   Status = "leave"
)

// KnownStatuses are the statuses aggregated into named buckets; anything
// else lands in the "others" bucket.
func KnownStatuses() []Status {
	return []Status{StatusPresent, StatusLate, StatusAbsent, StatusExcused}
}

type ValidationStatus string

const (
	ValidationPending  ValidationStatus = "pending"
	ValidationApproved ValidationStatus = "approved"
	ValidationRejected ValidationStatus = "rejected"
)

// Record is one day's attendance outcome for one member. Date is the
// organization-local calendar day in YYYY-MM-DD form; aggregation never
// needs more resolution than that.
type Record struct {
	ID               string
	MemberID         string
	Date             string
	Status           Status
	CheckIn          *time.Time
	CheckOut         *time.Time
	ValidationStatus ValidationStatus
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
