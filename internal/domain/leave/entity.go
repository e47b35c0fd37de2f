package leave

import "time"

type Type string

const (
	TypeAnnual   Type = "annual"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
	TypeUnpaid   Type = "unpaid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

type Request struct {
	ID         string
	MemberID   string
	Type       Type
	StartDate  string // YYYY-MM-DD, inclusive
	EndDate    string // YYYY-MM-DD, inclusive
	Reason     string
	Status     RequestStatus
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
