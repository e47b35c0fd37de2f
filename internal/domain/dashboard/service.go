package dashboard

import "context"

// Service aggregates attendance data for one organization. organizationID
// may be empty, in which case it is resolved from the caller's claims; a
// request that resolves to no organization fails with
// organization.ErrOrganizationNotFound.
type Service interface {
	// GetStats returns the composite dashboard snapshot. Independent
	// sub-aggregations run concurrently and degrade individually.
	GetStats(ctx context.Context, organizationID string) (*StatsResponse, error)

	// GetMonthlyTrend returns exactly six points, oldest month first.
	GetMonthlyTrend(ctx context.Context, organizationID string) ([]TrendPoint, error)

	// GetGroupComparison ranks active groups by monthly attendance rate.
	GetGroupComparison(ctx context.Context, organizationID string) ([]GroupComparisonStat, error)

	// GetAttendanceGroups rolls up today's statuses per group.
	GetAttendanceGroups(ctx context.Context, organizationID string) ([]GroupRollup, error)

	// GetTodaySummary derives the check-in hero numbers for today.
	GetTodaySummary(ctx context.Context, organizationID string) (*TodaySummary, error)
}
