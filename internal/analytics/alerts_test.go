package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

func alertIDs(alerts []domain.Alert) []string {
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestDeriveAlertsNoActivity(t *testing.T) {
	cmp := domain.PeriodComparison{
		Current: domain.PeriodMetrics{Revenue: 0, Bookings: 0},
		Changes: domain.PeriodChanges{Revenue: -100, ADR: -100, RevPAR: -100},
	}

	alerts := DeriveAlerts(cmp)

	// the dead-period alert suppresses everything else
	require.Len(t, alerts, 1)
	assert.Equal(t, "no-activity", alerts[0].ID)
	assert.Equal(t, domain.AlertSeverityDanger, alerts[0].Type)
}

func TestDeriveAlertsOccupancyTiers(t *testing.T) {
	tests := []struct {
		name      string
		occupancy float64
		wantID    string
	}{
		{"critical below 15", 10, "critical-occupancy"},
		{"low below 30", 25, "low-occupancy"},
		{"high at 90", 90, "high-occupancy"},
		{"healthy middle fires nothing", 60, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp := domain.PeriodComparison{
				Current: domain.PeriodMetrics{
					Revenue:       5000,
					Bookings:      10,
					OccupancyRate: tt.occupancy,
				},
			}
			ids := alertIDs(DeriveAlerts(cmp))
			if tt.wantID == "" {
				assert.NotContains(t, ids, "critical-occupancy")
				assert.NotContains(t, ids, "low-occupancy")
				assert.NotContains(t, ids, "high-occupancy")
			} else {
				assert.Contains(t, ids, tt.wantID)
			}
		})
	}
}

func TestDeriveAlertsRevenueTiers(t *testing.T) {
	base := domain.PeriodMetrics{Revenue: 5000, Bookings: 10, OccupancyRate: 60}

	// a drop past -20% is a warning, past -40% a danger
	ids := alertIDs(DeriveAlerts(domain.PeriodComparison{
		Current: base,
		Changes: domain.PeriodChanges{Revenue: -25},
	}))
	assert.Contains(t, ids, "revenue-decline")
	assert.NotContains(t, ids, "critical-revenue-decline")

	ids = alertIDs(DeriveAlerts(domain.PeriodComparison{
		Current: base,
		Changes: domain.PeriodChanges{Revenue: -45},
	}))
	assert.Contains(t, ids, "critical-revenue-decline")

	// exactly -20% sits on the boundary and does not fire
	ids = alertIDs(DeriveAlerts(domain.PeriodComparison{
		Current: base,
		Changes: domain.PeriodChanges{Revenue: -20},
	}))
	assert.NotContains(t, ids, "revenue-decline")

	ids = alertIDs(DeriveAlerts(domain.PeriodComparison{
		Current: base,
		Changes: domain.PeriodChanges{Revenue: 30},
	}))
	assert.Contains(t, ids, "revenue-growth")
}

func TestDeriveAlertsBookingAndRateRules(t *testing.T) {
	cmp := domain.PeriodComparison{
		Current: domain.PeriodMetrics{Revenue: 900, Bookings: 2, OccupancyRate: 50},
		Changes: domain.PeriodChanges{ADR: -16, RevPAR: -26},
	}

	ids := alertIDs(DeriveAlerts(cmp))
	assert.Contains(t, ids, "low-bookings")
	assert.Contains(t, ids, "adr-decline")
	assert.Contains(t, ids, "revpar-decline")
	assert.NotContains(t, ids, "no-bookings")
}

func TestDeriveAlertsSeverityOrder(t *testing.T) {
	cmp := domain.PeriodComparison{
		Current: domain.PeriodMetrics{Revenue: 900, Bookings: 5, OccupancyRate: 95},
		Changes: domain.PeriodChanges{Revenue: -45},
	}

	alerts := DeriveAlerts(cmp)
	require.NotEmpty(t, alerts)

	for i := 1; i < len(alerts); i++ {
		assert.LessOrEqual(t,
			alertSeverityRank[alerts[i-1].Type],
			alertSeverityRank[alerts[i].Type],
			"alerts must be ordered danger first")
	}
	assert.Equal(t, "critical-revenue-decline", alerts[0].ID)
}
