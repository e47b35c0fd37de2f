package dashboard

// ========== COMBINED DASHBOARD ==========

// StatsResponse is the composite snapshot for the main dashboard endpoint.
// Every field degrades independently: a failed sub-aggregation renders as
// its zero value (or null for MemberDistribution) instead of an error.
type StatsResponse struct {
	TotalActiveMembers int64                 `json:"total_active_members"`
	TotalMembers       int64                 `json:"total_members"`
	TodayAttendance    int64                 `json:"today_attendance"`
	TodayLate          int64                 `json:"today_late"`
	TodayAbsent        int64                 `json:"today_absent"`
	TodayExcused       int64                 `json:"today_excused"`
	PendingApprovals   int64                 `json:"pending_approvals"`
	TotalGroups        int64                 `json:"total_groups"`
	MemberDistribution *MemberDistribution   `json:"member_distribution"`
	MonthlyAttendance  MonthlyStat           `json:"monthly_attendance"`
	MonthlyLate        MonthlyStat           `json:"monthly_late"`
	ActiveMembers      MonthlyStat           `json:"active_members"`
	ActiveRFID         MonthlyStat           `json:"active_rfid"`
	AttendanceGroups   []GroupRollup         `json:"attendance_groups"`
	GroupComparison    []GroupComparisonStat `json:"group_comparison"`
}

// ========== PERIOD COMPARISON ==========

// MonthlyStat is a derived current/previous pair with its percent change.
// Never persisted; computed on demand.
type MonthlyStat struct {
	CurrentMonth  int64 `json:"current_month"`
	PreviousMonth int64 `json:"previous_month"`
	PercentChange int   `json:"percent_change"`
}

// ========== GROUP ROLLUP (today) ==========

// GroupRollup tallies one group's members for a single day. A member with
// no record that day counts toward Total but no status bucket, so
// Present+Late+Absent+Excused+Others <= Total.
type GroupRollup struct {
	Group   string `json:"group"`
	Present int    `json:"present"`
	Late    int    `json:"late"`
	Absent  int    `json:"absent"`
	Excused int    `json:"excused"`
	Others  int    `json:"others"`
	Total   int    `json:"total"`
}

// ========== GROUP COMPARISON RANKING ==========

type GroupComparisonStat struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AttendanceRate int    `json:"attendance_rate"`
	TotalMembers   int    `json:"total_members"`
	PresentToday   int    `json:"present_today"`
	Rank           int    `json:"rank"`
}

// ========== MONTHLY TREND ==========

// TrendPoint is one month in the trailing-6-month trend chart.
type TrendPoint struct {
	Month      string `json:"month"` // 3-letter abbreviation
	Attendance int64  `json:"attendance"`
	Late       int64  `json:"late"`
}

// ========== TODAY SUMMARY ==========

type TodaySummary struct {
	CheckedIn      int64 `json:"checked_in"`
	OnTime         int64 `json:"on_time"`
	Late           int64 `json:"late"`
	Absent         int64 `json:"absent"`
	TotalMembers   int64 `json:"total_members"`
	AttendanceRate int   `json:"attendance_rate"`
}

// ========== MEMBER DISTRIBUTION ==========

type DistributionSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type MemberDistribution struct {
	Status     []DistributionSlice `json:"status"`
	Employment []DistributionSlice `json:"employment"`
}
