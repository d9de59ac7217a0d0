package analytics

import (
	"math"
	"time"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Period is a half-open reporting window in wall-clock terms; both bounds
// are treated date-inclusively by the computations that take one.
type Period struct {
	Start time.Time
	End   time.Time
}

// Previous derives the window of equal duration immediately before this one.
// The previous window ends just before Start so the two never overlap.
func (p Period) Previous() Period {
	duration := p.End.Sub(p.Start)
	prevEnd := p.Start.Add(-time.Millisecond)
	return Period{Start: prevEnd.Add(-duration), End: prevEnd}
}

// Days is the inclusive day count used as the RevPAR denominator
func (p Period) Days() int {
	return daysCeil(p.Start, p.End) + 1
}

// Contains reports whether t falls inside the window, comparing dates only
func (p Period) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(dateOnly(p.Start)) && !d.After(dateOnly(p.End))
}

// dateOnly truncates a timestamp to its calendar date in UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysCeil is the number of days between two instants, rounded up
func daysCeil(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// OverlapNights counts the nights of a stay that fall inside a window.
// Stays entirely outside the window count zero; partial overlaps are clamped
// to the window before counting. Never negative.
func OverlapNights(checkIn, checkOut, windowStart, windowEnd time.Time) int {
	overlapStart := checkIn
	if windowStart.After(overlapStart) {
		overlapStart = windowStart
	}
	overlapEnd := checkOut
	if windowEnd.Before(overlapEnd) {
		overlapEnd = windowEnd
	}
	if overlapStart.After(overlapEnd) {
		return 0
	}
	nights := daysCeil(overlapStart, overlapEnd)
	if nights < 0 {
		return 0
	}
	return nights
}

// StayNights is the raw length of a stay in nights, rounded up
func StayNights(checkIn, checkOut time.Time) int {
	return daysCeil(checkIn, checkOut)
}

// monthBounds returns the first and last day of a calendar month
func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// daysInMonth is the number of calendar days in a month
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// sameMonth reports whether t falls in the given year and month
func sameMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}
