package mailer

import (
	"testing"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBundle() *domain.ReportBundle {
	return &domain.ReportBundle{
		TotalRevenue:        1050,
		RoomRevenue:         900,
		POSRevenue:          150,
		OccupancyRate:       42,
		TotalBookings:       7,
		OnlineBookings:      5,
		WalkInBookings:      2,
		AverageStayDuration: 2.5,
		TopRoom:             "201",
		Alerts:              []string{"Low occupancy rate: 42%"},
	}
}

func TestRenderReportAllSections(t *testing.T) {
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	html, err := RenderReport("Minima Hotel", domain.ReportFrequencyDaily, sampleBundle(), nil, now.AddDate(0, 0, -1), now, now)
	require.NoError(t, err)

	assert.Contains(t, html, "Minima Hotel")
	assert.Contains(t, html, "daily report")
	assert.Contains(t, html, "1050.00")
	assert.Contains(t, html, "42%")
	assert.Contains(t, html, "Top room")
	assert.Contains(t, html, "2.5 nights")
	assert.Contains(t, html, "Low occupancy rate: 42%")
}

func TestRenderReportSectionFilter(t *testing.T) {
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	html, err := RenderReport("Minima Hotel", domain.ReportFrequencyWeekly, sampleBundle(),
		[]string{"room_revenue", "pos_revenue"}, now.AddDate(0, 0, -7), now, now)
	require.NoError(t, err)

	assert.Contains(t, html, "Total revenue")
	assert.Contains(t, html, "Room revenue")
	assert.Contains(t, html, "POS revenue")
	assert.NotContains(t, html, "Occupancy rate")
	assert.NotContains(t, html, "Total bookings")
	assert.NotContains(t, html, "Alerts")
}

func TestRenderReportRoomRevenueOnly(t *testing.T) {
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	html, err := RenderReport("Minima Hotel", domain.ReportFrequencyWeekly, sampleBundle(),
		[]string{"room_revenue"}, now.AddDate(0, 0, -7), now, now)
	require.NoError(t, err)

	assert.Contains(t, html, "Room revenue")
	assert.NotContains(t, html, "POS revenue")
	assert.NotContains(t, html, "Total revenue")
}

func TestRenderReportPOSRevenueOnly(t *testing.T) {
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	html, err := RenderReport("Minima Hotel", domain.ReportFrequencyWeekly, sampleBundle(),
		[]string{"pos_revenue"}, now.AddDate(0, 0, -7), now, now)
	require.NoError(t, err)

	assert.Contains(t, html, "POS revenue")
	assert.NotContains(t, html, "Room revenue")
	assert.NotContains(t, html, "Total revenue")
}

func TestRenderReportFullKeyword(t *testing.T) {
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	html, err := RenderReport("Minima Hotel", domain.ReportFrequencyDaily, sampleBundle(),
		[]string{"full"}, now.AddDate(0, 0, -1), now, now)
	require.NoError(t, err)

	assert.Contains(t, html, "Total revenue")
	assert.Contains(t, html, "Occupancy rate")
	assert.Contains(t, html, "Total bookings")
	assert.Contains(t, html, "Alerts")
}

func TestRenderReportEscapesContent(t *testing.T) {
	bundle := sampleBundle()
	bundle.TopRoom = `<script>alert("x")</script>`
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)

	html, err := RenderReport("Minima Hotel", domain.ReportFrequencyDaily, bundle, nil, now, now, now)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestReportSubject(t *testing.T) {
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	subject := ReportSubject("Minima Hotel", domain.ReportFrequencyMonthly, now)
	assert.Equal(t, "Minima Hotel: monthly report, Jun 15, 2026", subject)
}
