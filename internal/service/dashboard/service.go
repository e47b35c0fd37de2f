package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/dashboard"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/organization"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/daterange"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/retry"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

const trendMonths = 6

type DashboardServiceImpl struct {
	repo    dashboard.Repository
	orgRepo organization.Repository
	now     func() time.Time
}

func NewDashboardService(repo dashboard.Repository, orgRepo organization.Repository) dashboard.Service {
	return &DashboardServiceImpl{repo: repo, orgRepo: orgRepo, now: time.Now}
}

// resolveOrganization scopes the request to one tenant. An explicit ID is
// verified to exist; otherwise the organization_id claim is used; otherwise
// the caller's user_id claim is mapped through their membership, surfacing
// ErrUnauthorized when none exists. This is the only fatal path in the
// facade: without a tenant scope there is no meaningful partial result.
func (s *DashboardServiceImpl) resolveOrganization(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		if _, err := s.orgRepo.GetByID(ctx, explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", organization.ErrOrganizationNotFound
	}
	if organizationID, ok := claims["organization_id"].(string); ok && organizationID != "" {
		return organizationID, nil
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", organization.ErrOrganizationNotFound
	}
	return s.orgRepo.OrganizationIDByUser(ctx, userID)
}

// memberSnapshot resolves the active roster, joined with groups, once per
// request. Every sub-metric reuses it so no metric reflects a different
// roster than another within the same response. On failure the snapshot
// degrades to empty and every record metric reports zero.
func (s *DashboardServiceImpl) memberSnapshot(ctx context.Context, organizationID string) []dashboard.MemberGroupRow {
	members, err := s.repo.ActiveMembersWithGroups(ctx, organizationID)
	if err != nil {
		slog.Error("dashboard: active member snapshot failed", "organization_id", organizationID, "error", err)
		return nil
	}
	return members
}

// memberIDSnapshot is the id-only variant for endpoints that never group by
// membership.
func (s *DashboardServiceImpl) memberIDSnapshot(ctx context.Context, organizationID string) []string {
	ids, err := s.repo.ActiveMemberIDs(ctx, organizationID)
	if err != nil {
		slog.Error("dashboard: active member snapshot failed", "organization_id", organizationID, "error", err)
		return nil
	}
	return ids
}

func memberIDsOf(members []dashboard.MemberGroupRow) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.MemberID
	}
	return ids
}

// countOrZero degrades a failed count-mode sub-query to 0.
func (s *DashboardServiceImpl) countOrZero(ctx context.Context, metric string, filter attendance.Filter) int64 {
	n, err := s.repo.CountAttendance(ctx, filter)
	if err != nil {
		slog.Error("dashboard: sub-query failed", "metric", metric, "error", err)
		return 0
	}
	return n
}

// GetStats assembles the composite dashboard snapshot. All independent
// sub-aggregations run concurrently; each degrades to its zero value on
// failure instead of failing the response.
func (s *DashboardServiceImpl) GetStats(ctx context.Context, organizationID string) (*dashboard.StatsResponse, error) {
	orgID, err := s.resolveOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := daterange.Format(now)
	members := s.memberSnapshot(ctx, orgID)
	memberIDs := memberIDsOf(members)

	var stats dashboard.StatsResponse

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Roster totals
	g.Go(func() error {
		activeOnly := true
		if n, err := s.repo.CountMembers(gCtx, orgID, &activeOnly); err != nil {
			slog.Error("dashboard: sub-query failed", "metric", "total_active_members", "error", err)
		} else {
			stats.TotalActiveMembers = n
		}
		if n, err := s.repo.CountMembers(gCtx, orgID, nil); err != nil {
			slog.Error("dashboard: sub-query failed", "metric", "total_members", "error", err)
		} else {
			stats.TotalMembers = n
		}
		return nil
	})

	// 2. Today's status counts
	g.Go(func() error {
		stats.TodayAttendance = s.countOrZero(gCtx, "today_attendance", attendance.Filter{
			MemberIDs: memberIDs, DateFrom: today, DateTo: today,
			Statuses: []attendance.Status{attendance.StatusPresent, attendance.StatusLate},
		})
		return nil
	})
	g.Go(func() error {
		stats.TodayLate = s.countOrZero(gCtx, "today_late", attendance.Filter{
			MemberIDs: memberIDs, DateFrom: today, DateTo: today,
			Statuses: []attendance.Status{attendance.StatusLate},
		})
		return nil
	})
	g.Go(func() error {
		stats.TodayAbsent = s.countOrZero(gCtx, "today_absent", attendance.Filter{
			MemberIDs: memberIDs, DateFrom: today, DateTo: today,
			Statuses: []attendance.Status{attendance.StatusAbsent},
		})
		return nil
	})
	g.Go(func() error {
		stats.TodayExcused = s.countOrZero(gCtx, "today_excused", attendance.Filter{
			MemberIDs: memberIDs, DateFrom: today, DateTo: today,
			Statuses: []attendance.Status{attendance.StatusExcused},
		})
		return nil
	})

	// 3. Pending approvals
	g.Go(func() error {
		pending := attendance.ValidationPending
		stats.PendingApprovals = s.countOrZero(gCtx, "pending_approvals", attendance.Filter{
			MemberIDs: memberIDs, ValidationStatus: &pending,
		})
		return nil
	})

	// 4. Active groups
	g.Go(func() error {
		if n, err := s.repo.CountActiveGroups(gCtx, orgID); err != nil {
			slog.Error("dashboard: sub-query failed", "metric", "total_groups", "error", err)
		} else {
			stats.TotalGroups = n
		}
		return nil
	})

	// 5. Member distribution (null on failure, not zeroed slices)
	g.Go(func() error {
		stats.MemberDistribution = s.memberDistribution(gCtx, orgID)
		return nil
	})

	// 6. Monthly attendance, the one sub-query with retry
	g.Go(func() error {
		stats.MonthlyAttendance = s.monthlyPair(gCtx, now, memberIDs,
			[]attendance.Status{attendance.StatusPresent, attendance.StatusLate}, true)
		return nil
	})

	// 7. Monthly late, best effort
	g.Go(func() error {
		stats.MonthlyLate = s.monthlyPair(gCtx, now, memberIDs,
			[]attendance.Status{attendance.StatusLate}, false)
		return nil
	})

	// 8. Active member growth
	g.Go(func() error {
		stats.ActiveMembers = s.activeMemberGrowth(gCtx, orgID, now)
		return nil
	})

	// 9. Active RFID cards (no historical data, previous is always 0)
	g.Go(func() error {
		if n, err := s.repo.CountActiveCards(gCtx, memberIDs); err != nil {
			slog.Error("dashboard: sub-query failed", "metric", "active_rfid", "error", err)
		} else {
			stats.ActiveRFID = dashboard.MonthlyStat{CurrentMonth: n}
		}
		return nil
	})

	// 10. Today's per-group rollup
	g.Go(func() error {
		rollups, err := s.attendanceGroups(gCtx, members, today)
		if err != nil {
			slog.Error("dashboard: sub-query failed", "metric", "attendance_groups", "error", err)
			rollups = []dashboard.GroupRollup{}
		}
		stats.AttendanceGroups = rollups
		return nil
	})

	// 11. Monthly group comparison ranking
	g.Go(func() error {
		comparison, err := s.groupComparison(gCtx, members, now)
		if err != nil {
			slog.Error("dashboard: sub-query failed", "metric", "group_comparison", "error", err)
			comparison = []dashboard.GroupComparisonStat{}
		}
		stats.GroupComparison = comparison
		return nil
	})

	if err := g.Wait(); err != nil {
		// Branches always return nil; this guards future additions.
		return nil, err
	}

	return &stats, nil
}

// monthlyPair counts records for the current and previous calendar month
// and compares them. withRetry enables the single bounded retry reserved
// for the monthly attendance metric.
func (s *DashboardServiceImpl) monthlyPair(ctx context.Context, now time.Time, memberIDs []string, statuses []attendance.Status, withRetry bool) dashboard.MonthlyStat {
	currentRange := daterange.Month(now, 0)
	previousRange := daterange.Month(now, 1)

	count := func(r daterange.Range) (int64, error) {
		filter := attendance.Filter{
			MemberIDs: memberIDs,
			DateFrom:  r.Start,
			DateTo:    r.End,
			Statuses:  statuses,
		}
		if !withRetry {
			return s.repo.CountAttendance(ctx, filter)
		}
		var n int64
		err := retry.Do(ctx, 2, 100*time.Millisecond, func(ctx context.Context) error {
			var err error
			n, err = s.repo.CountAttendance(ctx, filter)
			return err
		})
		return n, err
	}

	current, err := count(currentRange)
	if err != nil {
		slog.Error("dashboard: monthly count failed", "range", currentRange, "error", err)
		return dashboard.MonthlyStat{}
	}
	previous, err := count(previousRange)
	if err != nil {
		slog.Error("dashboard: monthly count failed", "range", previousRange, "error", err)
		return dashboard.MonthlyStat{}
	}

	return dashboard.MonthlyStat{
		CurrentMonth:  current,
		PreviousMonth: previous,
		PercentChange: dashboard.PercentChange(current, previous),
	}
}

func (s *DashboardServiceImpl) activeMemberGrowth(ctx context.Context, organizationID string, now time.Time) dashboard.MonthlyStat {
	activeOnly := true
	current, err := s.repo.CountMembers(ctx, organizationID, &activeOnly)
	if err != nil {
		slog.Error("dashboard: sub-query failed", "metric", "active_members", "error", err)
		return dashboard.MonthlyStat{}
	}

	oneMonthAgo := daterange.Format(now.AddDate(0, -1, 0))
	previous, err := s.repo.CountMembersHiredBy(ctx, organizationID, oneMonthAgo)
	if err != nil {
		slog.Error("dashboard: sub-query failed", "metric", "active_members", "error", err)
		return dashboard.MonthlyStat{}
	}

	return dashboard.MonthlyStat{
		CurrentMonth:  current,
		PreviousMonth: previous,
		PercentChange: dashboard.PercentChange(current, previous),
	}
}

func (s *DashboardServiceImpl) memberDistribution(ctx context.Context, organizationID string) *dashboard.MemberDistribution {
	activeOnly := true
	active, err := s.repo.CountMembers(ctx, organizationID, &activeOnly)
	if err != nil {
		slog.Error("dashboard: sub-query failed", "metric", "member_distribution", "error", err)
		return nil
	}
	total, err := s.repo.CountMembers(ctx, organizationID, nil)
	if err != nil {
		slog.Error("dashboard: sub-query failed", "metric", "member_distribution", "error", err)
		return nil
	}
	statuses, err := s.repo.MemberEmploymentStatuses(ctx, organizationID)
	if err != nil {
		slog.Error("dashboard: sub-query failed", "metric", "member_distribution", "error", err)
		return nil
	}

	return &dashboard.MemberDistribution{
		Status: []dashboard.DistributionSlice{
			{Name: "Active", Value: active},
			{Name: "Inactive", Value: total - active},
		},
		Employment: dashboard.EmploymentDistribution(statuses),
	}
}

func (s *DashboardServiceImpl) attendanceGroups(ctx context.Context, members []dashboard.MemberGroupRow, today string) ([]dashboard.GroupRollup, error) {
	if len(members) == 0 {
		return []dashboard.GroupRollup{}, nil
	}

	records, err := s.repo.FindAttendance(ctx, attendance.Filter{
		MemberIDs: memberIDsOf(members),
		DateFrom:  today,
		DateTo:    today,
	})
	if err != nil {
		return nil, err
	}

	return dashboard.GroupRollups(members, records), nil
}

func (s *DashboardServiceImpl) groupComparison(ctx context.Context, members []dashboard.MemberGroupRow, now time.Time) ([]dashboard.GroupComparisonStat, error) {
	if len(members) == 0 {
		return []dashboard.GroupComparisonStat{}, nil
	}

	month := daterange.Month(now, 0)
	records, err := s.repo.FindAttendance(ctx, attendance.Filter{
		MemberIDs: memberIDsOf(members),
		DateFrom:  month.Start,
		DateTo:    month.End,
		Statuses:  []attendance.Status{attendance.StatusPresent, attendance.StatusLate},
	})
	if err != nil {
		return nil, err
	}

	year, m := daterange.MonthOf(now, 0)
	return dashboard.CompareGroups(members, records, daterange.Format(now), year, m), nil
}

// GetMonthlyTrend returns exactly six points, oldest month first.
func (s *DashboardServiceImpl) GetMonthlyTrend(ctx context.Context, organizationID string) ([]dashboard.TrendPoint, error) {
	orgID, err := s.resolveOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	memberIDs := s.memberIDSnapshot(ctx, orgID)

	points := make([]dashboard.TrendPoint, 0, trendMonths)
	for ago := trendMonths - 1; ago >= 0; ago-- {
		r := daterange.Month(now, ago)

		total := s.countOrZero(ctx, "trend_attendance", attendance.Filter{
			MemberIDs: memberIDs, DateFrom: r.Start, DateTo: r.End,
			Statuses: []attendance.Status{attendance.StatusPresent, attendance.StatusLate},
		})
		late := s.countOrZero(ctx, "trend_late", attendance.Filter{
			MemberIDs: memberIDs, DateFrom: r.Start, DateTo: r.End,
			Statuses: []attendance.Status{attendance.StatusLate},
		})

		points = append(points, dashboard.TrendPoint{
			Month:      daterange.MonthLabel(now, ago),
			Attendance: total,
			Late:       late,
		})
	}

	return points, nil
}

func (s *DashboardServiceImpl) GetGroupComparison(ctx context.Context, organizationID string) ([]dashboard.GroupComparisonStat, error) {
	orgID, err := s.resolveOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ActiveMembersWithGroups(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.groupComparison(ctx, members, s.now().UTC())
}

func (s *DashboardServiceImpl) GetAttendanceGroups(ctx context.Context, organizationID string) ([]dashboard.GroupRollup, error) {
	orgID, err := s.resolveOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ActiveMembersWithGroups(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.attendanceGroups(ctx, members, daterange.Format(s.now().UTC()))
}

func (s *DashboardServiceImpl) GetTodaySummary(ctx context.Context, organizationID string) (*dashboard.TodaySummary, error) {
	orgID, err := s.resolveOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := daterange.Format(now)
	memberIDs := s.memberIDSnapshot(ctx, orgID)

	present := s.countOrZero(ctx, "today_summary_present", attendance.Filter{
		MemberIDs: memberIDs, DateFrom: today, DateTo: today,
		Statuses: []attendance.Status{attendance.StatusPresent},
	})
	late := s.countOrZero(ctx, "today_summary_late", attendance.Filter{
		MemberIDs: memberIDs, DateFrom: today, DateTo: today,
		Statuses: []attendance.Status{attendance.StatusLate},
	})
	absent := s.countOrZero(ctx, "today_summary_absent", attendance.Filter{
		MemberIDs: memberIDs, DateFrom: today, DateTo: today,
		Statuses: []attendance.Status{attendance.StatusAbsent},
	})

	activeOnly := true
	totalMembers, err := s.repo.CountMembers(ctx, orgID, &activeOnly)
	if err != nil {
		slog.Error("dashboard: sub-query failed", "metric", "today_summary_members", "error", err)
		totalMembers = 0
	}

	summary := dashboard.SummarizeToday(present, late, absent, totalMembers)
	return &summary, nil
}
