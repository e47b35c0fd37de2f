package notification

import "time"

type Type string

const (
	TypeAttendanceApproved Type = "attendance_approved"
	TypeAttendanceRejected Type = "attendance_rejected"
	TypeLeaveRequested     Type = "leave_requested"
	TypeLeaveApproved      Type = "leave_approved"
	TypeLeaveRejected      Type = "leave_rejected"
	TypeLateSpike          Type = "late_spike"
	TypeMemberJoined       Type = "member_joined"
)

type Notification struct {
	ID             string
	OrganizationID string
	RecipientID    string // member ID
	Type           Type
	Title          string
	Message        string
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}
