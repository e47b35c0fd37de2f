package organization

import "errors"

var (
	// ErrUnauthorized means no caller identity or membership was found when
	// one was required.
	ErrUnauthorized = errors.New("no organization membership for caller")

	// ErrOrganizationNotFound is fatal at aggregation entry points: without
	// a tenant scope there is no meaningful partial result.
	ErrOrganizationNotFound = errors.New("organization not found")
)
