package daterange

import "time"

// layout is the wire format for attendance dates.
const layout = "2006-01-02"

// Range is an inclusive date interval in YYYY-MM-DD form.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(layout)
}

// MonthOf returns the calendar year and month monthsAgo months before ref.
// The reference is normalized to the first of its month so that end-of-month
// dates never skew the arithmetic.
func MonthOf(ref time.Time, monthsAgo int) (int, time.Month) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	shifted := first.AddDate(0, -monthsAgo, 0)
	return shifted.Year(), shifted.Month()
}

// Month returns the full calendar month monthsAgo months before ref.
func Month(ref time.Time, monthsAgo int) Range {
	year, month := MonthOf(ref, monthsAgo)
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Range{Start: Format(start), End: Format(end)}
}

// MonthLabel returns the three-letter English label of the month monthsAgo
// months before ref, e.g. "Jan".
func MonthLabel(ref time.Time, monthsAgo int) string {
	_, month := MonthOf(ref, monthsAgo)
	return month.String()[:3]
}

// TrailingDays returns the range covering the n days ending at ref,
// inclusive of ref's date.
func TrailingDays(ref time.Time, n int) Range {
	end := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(n - 1))
	return Range{Start: Format(start), End: Format(end)}
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// WorkingDays approximates the working days in a month as 5/7 of its
// calendar days, rounded down.
func WorkingDays(year int, month time.Month) int {
	return DaysInMonth(year, month) * 5 / 7
}
