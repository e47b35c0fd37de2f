package group

import "time"

// Group is a department-like collection of members. It carries no behavior
// of its own; aggregation uses it purely as a grouping key.
type Group struct {
	ID             string
	OrganizationID string
	Name           string
	Description    *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
