package analytics

import (
	"fmt"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// Peaks computes demand patterns: booking creation by hour of day, stays by
// weekday and calendar month, and the weekday/weekend split. Pass a nil
// period for all time.
func Peaks(snap *Snapshot, period *Period) domain.PeakAnalysis {
	var filtered []*domain.Booking
	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if inGuestScope(b, period) {
			filtered = append(filtered, b)
		}
	}

	var hourCounts [24]int
	for _, b := range filtered {
		if b.BookedAt != nil && !b.BookedAt.IsZero() {
			hourCounts[b.BookedAt.Hour()]++
		}
	}
	checkInsByHour := make([]domain.HourCount, 24)
	for h := 0; h < 24; h++ {
		checkInsByHour[h] = domain.HourCount{
			Hour:  fmt.Sprintf("%02d:00", h),
			Count: hourCounts[h],
		}
	}

	var dayCounts [7]int
	var dayRevenue [7]float64
	for _, b := range filtered {
		dow := int(b.CheckIn.Weekday())
		dayCounts[dow]++
		dayRevenue[dow] += b.TotalPrice
	}
	bookingsByDayOfWeek := make([]domain.DayOfWeekStats, 7)
	for d := 0; d < 7; d++ {
		bookingsByDayOfWeek[d] = domain.DayOfWeekStats{
			Day:     dayNames[d],
			Count:   dayCounts[d],
			Revenue: dayRevenue[d],
		}
	}

	var monthCounts [12]int
	var monthRevenue [12]float64
	for _, b := range filtered {
		m := int(b.CheckIn.Month()) - 1
		monthCounts[m]++
		monthRevenue[m] += b.TotalPrice
	}
	bookingsByMonth := make([]domain.MonthStats, 12)
	for m := 0; m < 12; m++ {
		bookingsByMonth[m] = domain.MonthStats{
			Month:   monthNames[m],
			Count:   monthCounts[m],
			Revenue: monthRevenue[m],
		}
	}

	peakHour := checkInsByHour[0]
	for _, h := range checkInsByHour {
		if h.Count > peakHour.Count {
			peakHour = h
		}
	}
	peakDay, slowestDay := bookingsByDayOfWeek[0], bookingsByDayOfWeek[0]
	for _, d := range bookingsByDayOfWeek {
		if d.Count > peakDay.Count {
			peakDay = d
		}
		if d.Count < slowestDay.Count {
			slowestDay = d
		}
	}
	peakMonth := bookingsByMonth[0]
	for _, m := range bookingsByMonth {
		if m.Count > peakMonth.Count {
			peakMonth = m
		}
	}

	split := domain.WeekdayWeekendSplit{}
	for d := 1; d <= 5; d++ {
		split.Weekday += dayCounts[d]
		split.WeekdayRevenue += dayRevenue[d]
	}
	for _, d := range []int{0, 6} {
		split.Weekend += dayCounts[d]
		split.WeekendRevenue += dayRevenue[d]
	}

	return domain.PeakAnalysis{
		CheckInsByHour:      checkInsByHour,
		BookingsByDayOfWeek: bookingsByDayOfWeek,
		BookingsByMonth:     bookingsByMonth,
		PeakHour:            peakHour.Hour,
		PeakDay:             peakDay.Day,
		PeakMonth:           peakMonth.Month,
		SlowestDay:          slowestDay.Day,
		WeekdayVsWeekend:    split,
	}
}
