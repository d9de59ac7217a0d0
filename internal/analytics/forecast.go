package analytics

import (
	"math"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

const historyMonths = 6

// linearRegression fits a least-squares line over values indexed 0..n-1.
// Fewer than two points give a flat line through the last known value.
func linearRegression(data []float64) (slope, intercept float64) {
	n := len(data)
	if n < 2 {
		if n == 1 {
			return 0, data[0]
		}
		return 0, 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range data {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}

	fn := float64(n)
	slope = (fn*sumXY - sumX*sumY) / (fn*sumX2 - sumX*sumX)
	intercept = (sumY - slope*sumX) / fn
	if math.IsNaN(slope) {
		slope = 0
	}
	if math.IsNaN(intercept) {
		intercept = 0
	}
	return slope, intercept
}

// movingAverage averages the trailing window of a series
func movingAverage(data []float64, window int) float64 {
	if len(data) == 0 {
		return 0
	}
	if window > len(data) {
		window = len(data)
	}
	tail := data[len(data)-window:]
	sum := 0.0
	for _, v := range tail {
		sum += v
	}
	return sum / float64(len(tail))
}

// monthHistory computes revenue, occupancy and booking count for one month
func monthHistory(snap *Snapshot, year int, month time.Month) (revenue, occupancy float64, bookings int) {
	roomRevenue, posRevenue := 0.0, 0.0

	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if !b.Status.CountsForRevenue() {
			continue
		}
		if sameMonth(b.EffectiveDate(), year, month) {
			roomRevenue += b.TotalPrice
			bookings++
		}
	}

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Status != domain.POSStatusCompleted {
			continue
		}
		if sameMonth(t.CreatedAt, year, month) {
			posRevenue += t.Total
		}
	}

	monthStart, monthEnd := monthBounds(year, month)
	occupiedNights := 0
	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if !b.Status.CountsForOccupancy() {
			continue
		}
		occupiedNights += OverlapNights(dateOnly(b.CheckIn), dateOnly(b.CheckOut), monthStart, monthEnd)
	}

	totalNights := snap.TotalRooms() * daysInMonth(year, month)
	if totalNights > 0 {
		occupancy = float64(occupiedNights) / float64(totalNights) * 100
	}
	return roomRevenue + posRevenue, occupancy, bookings
}

// Forecast projects revenue, occupancy and bookings for the months after
// now, blending a least-squares trend over the trailing six months with a
// trailing moving average (60/40). Confidence is judged from the revenue
// coefficient of variation and how many history months saw any revenue.
func Forecast(snap *Snapshot, now time.Time, monthsAhead int) domain.ForecastResult {
	historical := make([]domain.ForecastPoint, 0, historyMonths)
	revenueHistory := make([]float64, 0, historyMonths)
	occupancyHistory := make([]float64, 0, historyMonths)
	bookingsHistory := make([]float64, 0, historyMonths)

	for i := historyMonths - 1; i >= 0; i-- {
		ref := now.AddDate(0, -i, 0)
		year, month := ref.Year(), ref.Month()
		revenue, occupancy, bookings := monthHistory(snap, year, month)

		historical = append(historical, domain.ForecastPoint{
			Month:     monthNames[month-1],
			Revenue:   revenue,
			Occupancy: round1(occupancy),
			Bookings:  bookings,
		})
		revenueHistory = append(revenueHistory, revenue)
		occupancyHistory = append(occupancyHistory, occupancy)
		bookingsHistory = append(bookingsHistory, float64(bookings))
	}

	revSlope, revIntercept := linearRegression(revenueHistory)
	occSlope, occIntercept := linearRegression(occupancyHistory)
	bookSlope, bookIntercept := linearRegression(bookingsHistory)

	revenueMA := movingAverage(revenueHistory, 3)
	occupancyMA := movingAverage(occupancyHistory, 3)
	bookingsMA := movingAverage(bookingsHistory, 3)

	n := float64(len(revenueHistory))
	forecast := make([]domain.ForecastPoint, 0, monthsAhead)
	for i := 1; i <= monthsAhead; i++ {
		month := now.AddDate(0, i, 0).Month()
		idx := n + float64(i) - 1

		trendRevenue := revIntercept + revSlope*idx
		trendOccupancy := occIntercept + occSlope*idx
		trendBookings := bookIntercept + bookSlope*idx

		projectedRevenue := math.Max(0, trendRevenue*0.6+revenueMA*0.4)
		projectedOccupancy := math.Min(100, math.Max(0, trendOccupancy*0.6+occupancyMA*0.4))
		projectedBookings := math.Max(0, math.Round(trendBookings*0.6+bookingsMA*0.4))

		forecast = append(forecast, domain.ForecastPoint{
			Month:       monthNames[month-1],
			Revenue:     math.Round(projectedRevenue),
			Occupancy:   round1(projectedOccupancy),
			Bookings:    int(projectedBookings),
			IsProjected: true,
		})
	}

	totalProjectedRevenue, totalProjectedOccupancy := 0.0, 0.0
	totalProjectedBookings := 0
	for _, f := range forecast {
		totalProjectedRevenue += f.Revenue
		totalProjectedOccupancy += f.Occupancy
		totalProjectedBookings += f.Bookings
	}
	avgProjectedOccupancy := 0.0
	if len(forecast) > 0 {
		avgProjectedOccupancy = totalProjectedOccupancy / float64(len(forecast))
	}

	lastMonthRevenue := 0.0
	if len(revenueHistory) > 0 {
		lastMonthRevenue = revenueHistory[len(revenueHistory)-1]
	}
	if lastMonthRevenue == 0 {
		lastMonthRevenue = 1
	}
	avgForecastRevenue := 0.0
	if monthsAhead > 0 {
		avgForecastRevenue = totalProjectedRevenue / float64(monthsAhead)
	}
	growthRate := (avgForecastRevenue - lastMonthRevenue) / lastMonthRevenue * 100

	trend := domain.TrendStable
	if occSlope > 1 {
		trend = domain.TrendUp
	} else if occSlope < -1 {
		trend = domain.TrendDown
	}

	variance := 0.0
	for _, r := range revenueHistory {
		variance += (r - revenueMA) * (r - revenueMA)
	}
	if len(revenueHistory) > 0 {
		variance /= float64(len(revenueHistory))
	}
	cv := 1.0
	if revenueMA > 0 {
		cv = math.Sqrt(variance) / revenueMA
	}
	nonZeroMonths := 0
	for _, r := range revenueHistory {
		if r > 0 {
			nonZeroMonths++
		}
	}

	confidence := domain.ConfidenceMedium
	if cv < 0.3 && nonZeroMonths >= 4 {
		confidence = domain.ConfidenceHigh
	} else if cv > 0.6 || nonZeroMonths < 3 {
		confidence = domain.ConfidenceLow
	}

	return domain.ForecastResult{
		Historical: historical,
		Forecast:   forecast,
		Summary: domain.ForecastSummary{
			ProjectedRevenue:   totalProjectedRevenue,
			ProjectedOccupancy: round1(avgProjectedOccupancy),
			ProjectedBookings:  totalProjectedBookings,
			RevenueGrowthRate:  round1(growthRate),
			OccupancyTrend:     trend,
			Confidence:         confidence,
		},
	}
}
