package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/daterange"
)

// ungroupedLabel is the rollup bucket for members without a group.
const ungroupedLabel = "No Group"

// PercentChange computes the period-over-period change in percent. A zero
// previous period maps to 100 when the current period is positive and to 0
// otherwise, so the comparison never divides by zero.
func PercentChange(current, previous int64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// StatusCounts partitions records by status and counts each partition.
func StatusCounts(records []attendance.Record) map[attendance.Status]int {
	counts := make(map[attendance.Status]int)
	for _, r := range records {
		counts[r.Status]++
	}
	return counts
}

// GroupRollups tallies one day's records per group. Groups appear in the
// order their first member was seen; members without a record contribute to
// Total but to no status bucket; statuses outside the known set land in
// Others.
func GroupRollups(members []MemberGroupRow, records []attendance.Record) []GroupRollup {
	recordByMember := make(map[string]attendance.Record, len(records))
	for _, r := range records {
		if _, ok := recordByMember[r.MemberID]; !ok {
			recordByMember[r.MemberID] = r
		}
	}

	index := make(map[string]int)
	rollups := make([]GroupRollup, 0)

	for _, m := range members {
		name := ungroupedLabel
		if m.GroupName != nil {
			name = *m.GroupName
		}

		i, ok := index[name]
		if !ok {
			i = len(rollups)
			index[name] = i
			rollups = append(rollups, GroupRollup{Group: name})
		}
		rollups[i].Total++

		r, ok := recordByMember[m.MemberID]
		if !ok {
			continue
		}
		switch r.Status {
		case attendance.StatusPresent:
			rollups[i].Present++
		case attendance.StatusLate:
			rollups[i].Late++
		case attendance.StatusAbsent:
			rollups[i].Absent++
		case attendance.StatusExcused:
			rollups[i].Excused++
		default:
			rollups[i].Others++
		}
	}

	return rollups
}

// CompareGroups ranks groups by monthly attendance rate. records must
// already be filtered to present/late statuses within the month; today
// selects which of them count toward PresentToday. Ungrouped members are
// excluded. Rate is min(100, round(monthlyPresent / (members*workingDays) *
// 100)) with the 5/7 working-day approximation. Ties keep first-seen order.
func CompareGroups(members []MemberGroupRow, records []attendance.Record, today string, year int, month time.Month) []GroupComparisonStat {
	type groupAgg struct {
		id             string
		name           string
		totalMembers   int
		presentToday   int
		monthlyPresent int
	}

	memberGroup := make(map[string]string, len(members))
	index := make(map[string]int)
	aggs := make([]*groupAgg, 0)

	for _, m := range members {
		if m.GroupID == nil {
			continue
		}
		id := *m.GroupID
		i, ok := index[id]
		if !ok {
			i = len(aggs)
			index[id] = i
			name := ""
			if m.GroupName != nil {
				name = *m.GroupName
			}
			aggs = append(aggs, &groupAgg{id: id, name: name})
		}
		aggs[i].totalMembers++
		memberGroup[m.MemberID] = id
	}

	for _, r := range records {
		groupID, ok := memberGroup[r.MemberID]
		if !ok {
			continue
		}
		agg := aggs[index[groupID]]
		agg.monthlyPresent++
		if r.Date == today {
			agg.presentToday++
		}
	}

	workingDays := daterange.WorkingDays(year, month)

	result := make([]GroupComparisonStat, 0, len(aggs))
	for _, agg := range aggs {
		if agg.totalMembers == 0 {
			continue
		}
		rate := 0
		if expected := agg.totalMembers * workingDays; expected > 0 {
			rate = int(math.Round(float64(agg.monthlyPresent) / float64(expected) * 100))
			if rate > 100 {
				rate = 100
			}
		}
		result = append(result, GroupComparisonStat{
			ID:             agg.id,
			Name:           agg.name,
			AttendanceRate: rate,
			TotalMembers:   agg.totalMembers,
			PresentToday:   agg.presentToday,
		})
	}

	// Stable sort keeps first-seen order for equal rates.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AttendanceRate > result[j].AttendanceRate
	})
	for i := range result {
		result[i].Rank = i + 1
	}

	return result
}

// SummarizeToday derives the check-in hero numbers from stored status
// counts. Nothing is inferred: checked-in is present+late, on-time is
// present, and the rate is 0 whenever the roster is empty.
func SummarizeToday(present, late, absent, totalMembers int64) TodaySummary {
	checkedIn := present + late
	rate := 0
	if totalMembers > 0 {
		rate = int(math.Round(float64(checkedIn) / float64(totalMembers) * 100))
	}
	return TodaySummary{
		CheckedIn:      checkedIn,
		OnTime:         present,
		Late:           late,
		Absent:         absent,
		TotalMembers:   totalMembers,
		AttendanceRate: rate,
	}
}

// EmploymentDistribution reduces per-member employment statuses into labeled
// slices, first-seen order, with empty statuses bucketed as "unknown".
func EmploymentDistribution(statuses []string) []DistributionSlice {
	index := make(map[string]int)
	slices := make([]DistributionSlice, 0)

	for _, s := range statuses {
		if s == "" {
			s = "unknown"
		}
		i, ok := index[s]
		if !ok {
			i = len(slices)
			index[s] = i
			slices = append(slices, DistributionSlice{Name: titleCase(s)})
		}
		slices[i].Value++
	}

	return slices
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
