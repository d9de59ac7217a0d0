package analytics

import (
	"fmt"
	"sort"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// Alert thresholds, percentages unless noted
const (
	thresholdLowOccupancy       = 30.0
	thresholdCriticalOccupancy  = 15.0
	thresholdHighOccupancy      = 90.0
	thresholdRevenueDecline     = -20.0
	thresholdCriticalRevDecline = -40.0
	thresholdRevenueGrowth      = 20.0
	thresholdLowBookings        = 2 // bookings, not percent
	thresholdADRDecline         = -15.0
	thresholdRevPARDecline      = -25.0
)

var alertSeverityRank = map[domain.AlertSeverity]int{
	domain.AlertSeverityDanger:  0,
	domain.AlertSeverityWarning: 1,
	domain.AlertSeverityInfo:    2,
	domain.AlertSeveritySuccess: 3,
}

// DeriveAlerts evaluates the alert rules against a period comparison. A dead
// period (no revenue, no bookings) short-circuits to a single data-capture
// alert since every other rule would fire meaninglessly on zeros.
func DeriveAlerts(comparison domain.PeriodComparison) []domain.Alert {
	current := comparison.Current
	changes := comparison.Changes
	alerts := []domain.Alert{}

	if current.Revenue == 0 && current.Bookings == 0 {
		return []domain.Alert{{
			ID:        "no-activity",
			Type:      domain.AlertSeverityDanger,
			Title:     "No Activity Detected",
			Message:   "There are no bookings or revenue recorded in the selected period. Check if data is being captured correctly.",
			Metric:    "₱0 revenue",
			Threshold: "Expected: > ₱0",
		}}
	}

	switch {
	case current.OccupancyRate < thresholdCriticalOccupancy:
		alerts = append(alerts, domain.Alert{
			ID:        "critical-occupancy",
			Type:      domain.AlertSeverityDanger,
			Title:     "Critical Low Occupancy",
			Message:   "Occupancy rate is critically low. Consider promotional offers or marketing campaigns to attract guests.",
			Metric:    fmt.Sprintf("%v%%", current.OccupancyRate),
			Threshold: fmt.Sprintf("> %v%%", thresholdCriticalOccupancy),
		})
	case current.OccupancyRate < thresholdLowOccupancy:
		alerts = append(alerts, domain.Alert{
			ID:        "low-occupancy",
			Type:      domain.AlertSeverityWarning,
			Title:     "Low Occupancy Rate",
			Message:   "Occupancy is below target. Review pricing strategy or increase marketing efforts.",
			Metric:    fmt.Sprintf("%v%%", current.OccupancyRate),
			Threshold: fmt.Sprintf("> %v%%", thresholdLowOccupancy),
		})
	case current.OccupancyRate >= thresholdHighOccupancy:
		alerts = append(alerts, domain.Alert{
			ID:      "high-occupancy",
			Type:    domain.AlertSeveritySuccess,
			Title:   "Excellent Occupancy",
			Message: "Occupancy rate is excellent! Consider dynamic pricing to maximize revenue.",
			Metric:  fmt.Sprintf("%v%%", current.OccupancyRate),
		})
	}

	switch {
	case changes.Revenue < thresholdCriticalRevDecline:
		alerts = append(alerts, domain.Alert{
			ID:        "critical-revenue-decline",
			Type:      domain.AlertSeverityDanger,
			Title:     "Significant Revenue Decline",
			Message:   "Revenue has dropped significantly compared to the previous period. Immediate action recommended.",
			Metric:    fmt.Sprintf("%v%%", changes.Revenue),
			Threshold: fmt.Sprintf("> %v%%", thresholdCriticalRevDecline),
		})
	case changes.Revenue < thresholdRevenueDecline:
		alerts = append(alerts, domain.Alert{
			ID:        "revenue-decline",
			Type:      domain.AlertSeverityWarning,
			Title:     "Revenue Declining",
			Message:   "Revenue is down compared to the previous period. Review pricing and occupancy strategies.",
			Metric:    fmt.Sprintf("%v%%", changes.Revenue),
			Threshold: fmt.Sprintf("> %v%%", thresholdRevenueDecline),
		})
	case changes.Revenue >= thresholdRevenueGrowth:
		alerts = append(alerts, domain.Alert{
			ID:      "revenue-growth",
			Type:    domain.AlertSeveritySuccess,
			Title:   "Strong Revenue Growth",
			Message: "Revenue has increased significantly compared to the previous period. Great performance!",
			Metric:  fmt.Sprintf("+%v%%", changes.Revenue),
		})
	}

	switch {
	case current.Bookings == 0:
		alerts = append(alerts, domain.Alert{
			ID:      "no-bookings",
			Type:    domain.AlertSeverityDanger,
			Title:   "No Bookings",
			Message: "No bookings recorded in this period. Check booking channels and availability.",
			Metric:  "0 bookings",
		})
	case current.Bookings <= thresholdLowBookings:
		alerts = append(alerts, domain.Alert{
			ID:        "low-bookings",
			Type:      domain.AlertSeverityWarning,
			Title:     "Low Booking Volume",
			Message:   "Very few bookings in this period. Consider promotional activities.",
			Metric:    fmt.Sprintf("%d bookings", current.Bookings),
			Threshold: fmt.Sprintf("> %d", thresholdLowBookings),
		})
	}

	if changes.ADR < thresholdADRDecline {
		alerts = append(alerts, domain.Alert{
			ID:      "adr-decline",
			Type:    domain.AlertSeverityWarning,
			Title:   "Average Daily Rate Declining",
			Message: "ADR has dropped compared to previous period. Review room pricing strategy.",
			Metric:  fmt.Sprintf("%v%%", changes.ADR),
		})
	}

	if changes.RevPAR < thresholdRevPARDecline {
		alerts = append(alerts, domain.Alert{
			ID:      "revpar-decline",
			Type:    domain.AlertSeverityWarning,
			Title:   "RevPAR Declining",
			Message: "Revenue per available room is down. This affects overall profitability.",
			Metric:  fmt.Sprintf("%v%%", changes.RevPAR),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alertSeverityRank[alerts[i].Type] < alertSeverityRank[alerts[j].Type]
	})
	return alerts
}
