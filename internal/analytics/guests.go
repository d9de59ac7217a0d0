package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// guestKey identifies a guest across bookings: guest record when linked,
// email otherwise.
func guestKey(b *domain.Booking) string {
	if b.GuestID != nil {
		return b.GuestID.String()
	}
	return b.GuestEmail
}

// inGuestScope selects bookings for behaviour analytics: any stay that was
// paid, completed or is currently checked in, inside the window when one is
// given.
func inGuestScope(b *domain.Booking, period *Period) bool {
	if !b.Status.CountsForOccupancy() {
		return false
	}
	if period == nil {
		return true
	}
	return period.Contains(b.EffectiveDate())
}

// Guests computes the guest behaviour block: channel split, repeat rate,
// stay-length distribution and top spenders. Pass a nil period for all time.
func Guests(snap *Snapshot, period *Period) domain.GuestAnalytics {
	var filtered []*domain.Booking
	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if inGuestScope(b, period) {
			filtered = append(filtered, b)
		}
	}

	online, walkIn := 0, 0
	for _, b := range filtered {
		if b.IsWalkIn {
			walkIn++
		} else {
			online++
		}
	}
	total := len(filtered)

	var stayDurations []int
	for _, b := range filtered {
		nights := StayNights(dateOnly(b.CheckIn), dateOnly(b.CheckOut))
		if nights > 0 {
			stayDurations = append(stayDurations, nights)
		}
	}
	avgStay := 0.0
	if len(stayDurations) > 0 {
		sum := 0
		for _, n := range stayDurations {
			sum += n
		}
		avgStay = float64(sum) / float64(len(stayDurations))
	}

	countIn := func(lo, hi int) int {
		c := 0
		for _, d := range stayDurations {
			if d >= lo && d <= hi {
				c++
			}
		}
		return c
	}
	distribution := []domain.StayDurationBucket{
		{Range: "1 night", Count: countIn(1, 1)},
		{Range: "2 nights", Count: countIn(2, 2)},
		{Range: "3-4 nights", Count: countIn(3, 4)},
		{Range: "5-7 nights", Count: countIn(5, 7)},
		{Range: "8+ nights", Count: countIn(8, math.MaxInt32)},
	}

	type guestAgg struct {
		name  string
		email string
		count int
		spent float64
	}
	// The guest directory is authoritative for identity; booking-level
	// name/email is a fallback for stays never linked to a guest record.
	directory := snap.guestIndex()
	byGuest := make(map[string]*guestAgg)
	for _, b := range filtered {
		key := guestKey(b)
		g, ok := byGuest[key]
		if !ok {
			g = &guestAgg{name: b.GuestName, email: b.GuestEmail}
			if b.GuestID != nil {
				if rec, found := directory[*b.GuestID]; found {
					g.name = rec.Name
					g.email = rec.Email
				}
			}
			byGuest[key] = g
		}
		g.count++
		g.spent += b.TotalPrice
	}

	uniqueGuests := len(byGuest)
	repeatGuests := 0
	for _, g := range byGuest {
		if g.count > 1 {
			repeatGuests++
		}
	}

	guests := make([]*guestAgg, 0, len(byGuest))
	for _, g := range byGuest {
		guests = append(guests, g)
	}
	sort.SliceStable(guests, func(i, j int) bool { return guests[i].spent > guests[j].spent })
	if len(guests) > 5 {
		guests = guests[:5]
	}
	topGuests := make([]domain.TopGuest, 0, len(guests))
	for _, g := range guests {
		topGuests = append(topGuests, domain.TopGuest{
			Name:       g.name,
			Email:      g.email,
			Bookings:   g.count,
			TotalSpent: g.spent,
		})
	}

	type monthAgg struct {
		key    string
		online int
		walkIn int
	}
	var monthOrder []string
	byMonth := make(map[string]*monthAgg)
	for _, b := range filtered {
		d := b.EffectiveDate()
		key := fmt.Sprintf("%s %d", monthNames[d.Month()-1], d.Year())
		m, ok := byMonth[key]
		if !ok {
			m = &monthAgg{key: key}
			byMonth[key] = m
			monthOrder = append(monthOrder, key)
		}
		if b.IsWalkIn {
			m.walkIn++
		} else {
			m.online++
		}
	}
	sort.SliceStable(monthOrder, func(i, j int) bool {
		return parseMonthKey(monthOrder[i]).Before(parseMonthKey(monthOrder[j]))
	})
	if len(monthOrder) > 6 {
		monthOrder = monthOrder[len(monthOrder)-6:]
	}
	guestsByMonth := make([]domain.GuestsByMonth, 0, len(monthOrder))
	for _, key := range monthOrder {
		m := byMonth[key]
		guestsByMonth = append(guestsByMonth, domain.GuestsByMonth{
			Month:  m.key,
			Online: m.online,
			WalkIn: m.walkIn,
		})
	}

	pct := func(part, whole int) float64 {
		if whole <= 0 {
			return 0
		}
		return math.Round(float64(part) / float64(whole) * 100)
	}

	return domain.GuestAnalytics{
		TotalGuests:              uniqueGuests,
		OnlineBookings:           online,
		WalkInBookings:           walkIn,
		OnlinePercentage:         pct(online, total),
		WalkInPercentage:         pct(walkIn, total),
		RepeatGuests:             repeatGuests,
		RepeatGuestPercentage:    pct(repeatGuests, uniqueGuests),
		NewGuests:                uniqueGuests - repeatGuests,
		AverageStayDuration:      round1(avgStay),
		GuestsByMonth:            guestsByMonth,
		TopGuests:                topGuests,
		StayDurationDistribution: distribution,
	}
}

// parseMonthKey inverts the "Jan 2026" month label for sorting
func parseMonthKey(key string) time.Time {
	t, err := time.Parse("Jan 2006", key)
	if err != nil {
		return time.Time{}
	}
	return t
}
