package dashboard

import (
	"context"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
)

// MemberGroupRow is a member joined with its group, normalized to a fixed
// shape immediately after fetch so aggregation never branches on join
// cardinality. GroupID/GroupName are nil for ungrouped members.
type MemberGroupRow struct {
	MemberID  string
	GroupID   *string
	GroupName *string
}

// Repository is the read-only record fetcher behind the aggregator. All
// queries are tenant-scoped; record queries additionally take an explicit
// member-id set so results can never mix organizations.
type Repository interface {
	// ActiveMemberIDs resolves the organization's active member set, fetched
	// once per dashboard request and reused by every sub-metric.
	ActiveMemberIDs(ctx context.Context, organizationID string) ([]string, error)

	// ActiveMembersWithGroups returns active members joined with their
	// groups, in a stable insertion order.
	ActiveMembersWithGroups(ctx context.Context, organizationID string) ([]MemberGroupRow, error)

	// CountMembers counts members; activeOnly nil counts all.
	CountMembers(ctx context.Context, organizationID string, activeOnly *bool) (int64, error)

	// CountMembersHiredBy counts active members hired on or before date.
	CountMembersHiredBy(ctx context.Context, organizationID string, date string) (int64, error)

	// MemberEmploymentStatuses returns the employment status of every
	// member, one entry per member, for distribution charts.
	MemberEmploymentStatuses(ctx context.Context, organizationID string) ([]string, error)

	// CountAttendance counts attendance records in count-only mode.
	CountAttendance(ctx context.Context, filter attendance.Filter) (int64, error)

	// FindAttendance returns raw attendance rows for in-memory aggregation.
	FindAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error)

	// CountActiveGroups counts the organization's active groups.
	CountActiveGroups(ctx context.Context, organizationID string) (int64, error)

	// CountActiveCards counts active RFID cards held by the given members.
	CountActiveCards(ctx context.Context, memberIDs []string) (int64, error)
}
