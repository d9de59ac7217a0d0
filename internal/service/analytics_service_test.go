package service

import (
	"context"
	"testing"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSnapshots struct {
	snap  *analytics.Snapshot
	loads int
}

func (c *countingSnapshots) Load(ctx context.Context) (*analytics.Snapshot, error) {
	c.loads++
	return c.snap, nil
}

func testPeriod() analytics.Period {
	return analytics.Period{
		Start: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestAnalyticsServiceCachesResults(t *testing.T) {
	snapshots := &countingSnapshots{snap: &analytics.Snapshot{}}
	svc := NewAnalyticsService(snapshots, true, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := svc.BookingStats(ctx, testPeriod())
	require.NoError(t, err)
	_, err = svc.BookingStats(ctx, testPeriod())
	require.NoError(t, err)

	assert.Equal(t, 1, snapshots.loads, "second read served from cache")
}

func TestAnalyticsServiceCacheKeyedByParams(t *testing.T) {
	snapshots := &countingSnapshots{snap: &analytics.Snapshot{}}
	svc := NewAnalyticsService(snapshots, true, time.Minute, zap.NewNop())
	ctx := context.Background()

	other := testPeriod()
	other.End = other.End.AddDate(0, 0, 7)

	_, err := svc.BookingStats(ctx, testPeriod())
	require.NoError(t, err)
	_, err = svc.BookingStats(ctx, other)
	require.NoError(t, err)

	assert.Equal(t, 2, snapshots.loads, "different windows are separate entries")
}

func TestAnalyticsServiceRefreshAll(t *testing.T) {
	snapshots := &countingSnapshots{snap: &analytics.Snapshot{}}
	svc := NewAnalyticsService(snapshots, true, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CategoryRevenue(ctx)
	require.NoError(t, err)

	svc.RefreshAll()

	_, err = svc.CategoryRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshots.loads)
}

func TestAnalyticsServiceCacheDisabled(t *testing.T) {
	snapshots := &countingSnapshots{snap: &analytics.Snapshot{}}
	svc := NewAnalyticsService(snapshots, false, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := svc.PaymentMethods(ctx)
	require.NoError(t, err)
	_, err = svc.PaymentMethods(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, snapshots.loads)
}

func TestForecastClampsMonths(t *testing.T) {
	snapshots := &countingSnapshots{snap: &analytics.Snapshot{}}
	svc := NewAnalyticsService(snapshots, false, time.Minute, zap.NewNop())
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	result, err := svc.Forecast(context.Background(), now, 0)
	require.NoError(t, err)
	assert.Len(t, result.Forecast, 1)

	result, err = svc.Forecast(context.Background(), now, 50)
	require.NoError(t, err)
	assert.Len(t, result.Forecast, 12)
}

func TestAlertsDeriveFromComparison(t *testing.T) {
	snapshots := &countingSnapshots{snap: &analytics.Snapshot{}}
	svc := NewAnalyticsService(snapshots, true, time.Minute, zap.NewNop())

	alerts, err := svc.Alerts(context.Background(), testPeriod())
	require.NoError(t, err)
	// An empty snapshot has no activity, which itself is an alert.
	require.Len(t, alerts, 1)
	assert.Equal(t, "no-activity", alerts[0].ID)
}
