package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// reportTemplate is intentionally simple inline-styled HTML so it renders the
// same across mail clients.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 640px; margin: 0 auto;">
  <h1 style="font-size: 20px;">{{.HotelName}}: {{.Title}}</h1>
  <p style="color: #666;">{{.PeriodLabel}}</p>

  {{if or .ShowRoomRevenue .ShowPOSRevenue}}
  <h2 style="font-size: 16px; border-bottom: 1px solid #ddd; padding-bottom: 4px;">Revenue</h2>
  <table style="width: 100%; border-collapse: collapse;">
    {{if and .ShowRoomRevenue .ShowPOSRevenue}}<tr><td style="padding: 4px 0;">Total revenue</td><td style="text-align: right;">{{printf "%.2f" .Bundle.TotalRevenue}}</td></tr>{{end}}
    {{if .ShowRoomRevenue}}<tr><td style="padding: 4px 0;">Room revenue</td><td style="text-align: right;">{{printf "%.2f" .Bundle.RoomRevenue}}</td></tr>{{end}}
    {{if .ShowPOSRevenue}}<tr><td style="padding: 4px 0;">POS revenue</td><td style="text-align: right;">{{printf "%.2f" .Bundle.POSRevenue}}</td></tr>{{end}}
  </table>
  {{end}}

  {{if .ShowOccupancy}}
  <h2 style="font-size: 16px; border-bottom: 1px solid #ddd; padding-bottom: 4px;">Occupancy</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 4px 0;">Occupancy rate</td><td style="text-align: right;">{{printf "%.0f" .Bundle.OccupancyRate}}%</td></tr>
    {{if .Bundle.TopRoom}}<tr><td style="padding: 4px 0;">Top room</td><td style="text-align: right;">{{.Bundle.TopRoom}}</td></tr>{{end}}
  </table>
  {{end}}

  {{if .ShowBookings}}
  <h2 style="font-size: 16px; border-bottom: 1px solid #ddd; padding-bottom: 4px;">Bookings</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 4px 0;">Total bookings</td><td style="text-align: right;">{{.Bundle.TotalBookings}}</td></tr>
    <tr><td style="padding: 4px 0;">Online</td><td style="text-align: right;">{{.Bundle.OnlineBookings}}</td></tr>
    <tr><td style="padding: 4px 0;">Walk-in</td><td style="text-align: right;">{{.Bundle.WalkInBookings}}</td></tr>
    <tr><td style="padding: 4px 0;">Average stay</td><td style="text-align: right;">{{printf "%.1f" .Bundle.AverageStayDuration}} nights</td></tr>
  </table>
  {{end}}

  {{if .ShowAlerts}}{{if .Bundle.Alerts}}
  <h2 style="font-size: 16px; border-bottom: 1px solid #ddd; padding-bottom: 4px;">Alerts</h2>
  <ul>
    {{range .Bundle.Alerts}}<li style="padding: 2px 0;">{{.}}</li>{{end}}
  </ul>
  {{end}}{{end}}

  <p style="color: #999; font-size: 12px; margin-top: 24px;">Generated {{.GeneratedAt}} by {{.HotelName}} back office.</p>
</body>
</html>`))

type reportView struct {
	HotelName       string
	Title           string
	PeriodLabel     string
	GeneratedAt     string
	Bundle          *domain.ReportBundle
	ShowRoomRevenue bool
	ShowPOSRevenue  bool
	ShowOccupancy   bool
	ShowBookings    bool
	ShowAlerts      bool
}

// ReportSubject builds the email subject line for a report.
func ReportSubject(hotelName string, frequency domain.ReportFrequency, now time.Time) string {
	return fmt.Sprintf("%s: %s report, %s", hotelName, frequency, now.Format("Jan 2, 2006"))
}

// RenderReport builds the HTML body for a report email. An empty sections
// list or a list containing "full" renders everything.
func RenderReport(hotelName string, frequency domain.ReportFrequency, bundle *domain.ReportBundle, sections []string, periodStart, periodEnd, now time.Time) (string, error) {
	full := len(sections) == 0
	for _, s := range sections {
		if s == string(domain.ReportSectionFull) {
			full = true
		}
	}
	include := func(section domain.ReportSection) bool {
		if full {
			return true
		}
		for _, s := range sections {
			if s == string(section) {
				return true
			}
		}
		return false
	}

	view := reportView{
		HotelName: hotelName,
		Title:     fmt.Sprintf("%s report", frequency),
		PeriodLabel: fmt.Sprintf("%s to %s",
			periodStart.Format("Jan 2, 2006"), periodEnd.Format("Jan 2, 2006")),
		GeneratedAt:     now.Format("Jan 2, 2006 15:04 MST"),
		Bundle:          bundle,
		ShowRoomRevenue: include(domain.ReportSectionRoomRevenue),
		ShowPOSRevenue:  include(domain.ReportSectionPOSRevenue),
		ShowOccupancy:   include(domain.ReportSectionOccupancy),
		ShowBookings:    include(domain.ReportSectionBookings),
		ShowAlerts:      include(domain.ReportSectionAlerts),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render report email: %w", err)
	}
	return buf.String(), nil
}
