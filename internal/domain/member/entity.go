package member

import "time"

type EmploymentStatus string

const (
	EmploymentFullTime   EmploymentStatus = "full_time"
	EmploymentPartTime   EmploymentStatus = "part_time"
	EmploymentContract   EmploymentStatus = "contract"
	EmploymentInternship EmploymentStatus = "internship"
)

// Member belongs to one organization and at most one group. Members are
// deactivated rather than deleted so historical attendance keeps its owner.
type Member struct {
	ID               string
	OrganizationID   string
	UserID           *string
	GroupID          *string
	FullName         string
	Email            string
	Position         *string
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}
