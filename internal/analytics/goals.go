package analytics

import (
	"math"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// GoalWindow resolves a goal's target window. Quarterly goals snap the
// stored month back to the start of its quarter; yearly goals ignore it.
func GoalWindow(goal *domain.Goal) (start, end time.Time) {
	switch goal.Period {
	case domain.GoalPeriodQuarterly:
		quarterStart := time.Month(goal.Month/3*3 + 1)
		start = time.Date(goal.Year, quarterStart, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 3, -1)
	case domain.GoalPeriodYearly:
		start = time.Date(goal.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(goal.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		start = time.Date(goal.Year, time.Month(goal.Month+1), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	}
	return start, end
}

// goalCurrent measures the goal's metric over its window
func goalCurrent(snap *Snapshot, goal *domain.Goal, start, end time.Time) float64 {
	switch goal.Type {
	case domain.GoalTypeRevenue:
		current := 0.0
		for i := range snap.Bookings {
			b := &snap.Bookings[i]
			if !b.Status.CountsForRevenue() {
				continue
			}
			d := b.EffectiveDate()
			if !d.Before(start) && !d.After(end) {
				current += b.TotalPrice
			}
		}
		for i := range snap.Transactions {
			t := &snap.Transactions[i]
			if t.Status != domain.POSStatusCompleted {
				continue
			}
			if !t.CreatedAt.Before(start) && !t.CreatedAt.After(end) {
				current += t.Total
			}
		}
		return current

	case domain.GoalTypeOccupancy:
		occupiedNights := 0
		for i := range snap.Bookings {
			b := &snap.Bookings[i]
			if !b.Status.CountsForOccupancy() {
				continue
			}
			occupiedNights += OverlapNights(dateOnly(b.CheckIn), dateOnly(b.CheckOut), start, end)
		}
		totalNights := snap.TotalRooms() * daysCeil(start, end)
		if totalNights <= 0 {
			return 0
		}
		return math.Round(float64(occupiedNights) / float64(totalNights) * 100)

	case domain.GoalTypeBookings:
		count := 0.0
		for i := range snap.Bookings {
			b := &snap.Bookings[i]
			if !b.Status.CountsForRevenue() {
				continue
			}
			d := b.EffectiveDate()
			if !d.Before(start) && !d.After(end) {
				count++
			}
		}
		return count
	}
	return 0
}

// GoalProgressFor computes pacing for one goal as of now. Expected progress
// is linear in elapsed days; the on-track and at-risk bands sit at 90% and
// 70% of it. Early in a period the bands are close to zero, so nearly any
// activity reads as on-track.
func GoalProgressFor(snap *Snapshot, goal *domain.Goal, now time.Time) domain.GoalProgress {
	start, end := GoalWindow(goal)

	daysInPeriod := daysCeil(start, end)
	daysRemaining := daysCeil(now, end)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	current := goalCurrent(snap, goal, start, end)

	percentage := 0.0
	if goal.Target > 0 {
		percentage = math.Round(current / goal.Target * 100)
	}
	remaining := math.Max(0, goal.Target-current)

	daysPassed := daysInPeriod - daysRemaining
	expectedProgress := 0.0
	if daysInPeriod > 0 {
		expectedProgress = float64(daysPassed) / float64(daysInPeriod)
	}

	var status domain.GoalStatus
	switch {
	case percentage >= 100:
		status = domain.GoalStatusAchieved
	case percentage >= expectedProgress*100*0.9:
		status = domain.GoalStatusOnTrack
	case percentage >= expectedProgress*100*0.7:
		status = domain.GoalStatusAtRisk
	default:
		status = domain.GoalStatusBehind
	}

	return domain.GoalProgress{
		Goal:          goal.ToDTO(),
		Current:       current,
		Percentage:    math.Min(percentage, 100),
		Remaining:     remaining,
		Status:        status,
		DaysRemaining: daysRemaining,
	}
}

// GoalProgressAll computes pacing for every goal
func GoalProgressAll(snap *Snapshot, goals []domain.Goal, now time.Time) []domain.GoalProgress {
	progress := make([]domain.GoalProgress, 0, len(goals))
	for i := range goals {
		progress = append(progress, GoalProgressFor(snap, &goals[i], now))
	}
	return progress
}
