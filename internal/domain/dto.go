package domain

import (
	"time"

	"github.com/google/uuid"
)

// Analytics response DTOs. Field names follow the shapes the dashboard
// consumes; all money values are in the hotel's operating currency.

// RoomTypeSummary aggregates rooms of one type with the occupancy snapshot
// for a single date.
type RoomTypeSummary struct {
	Type      string   `json:"type"`
	Occupied  int      `json:"occupied"`
	Total     int      `json:"total"`
	Rate      float64  `json:"rate"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
}

// BookingSummary is the trimmed booking row shown on the dashboard
type BookingSummary struct {
	ID         string  `json:"id"`
	Guest      string  `json:"guest"`
	Room       string  `json:"room"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
	IsWalkIn   bool    `json:"isWalkIn"`
}

// BookingStats is the booking-volume block for a period
type BookingStats struct {
	Total        int     `json:"total"`
	WalkIn       int     `json:"walkIn"`
	Online       int     `json:"online"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// DailyOccupancy is one day of the occupancy series
type DailyOccupancy struct {
	Date      string  `json:"date"`
	Occupied  int     `json:"occupied"`
	Available int     `json:"available"`
	Rate      float64 `json:"rate"`
}

// MonthlyOccupancy is one month of the occupancy series
type MonthlyOccupancy struct {
	Month string  `json:"month"`
	Rate  float64 `json:"rate"`
}

// MonthlyRevenue is one month of revenue split by source
type MonthlyRevenue struct {
	Month      string  `json:"month"`
	Rooms      float64 `json:"rooms"`
	Restaurant float64 `json:"restaurant"`
	Spa        float64 `json:"spa"`
	Other      float64 `json:"other"`
}

// KPIBlock is the dashboard headline block
type KPIBlock struct {
	OccupancyRate float64 `json:"occupancyRate"`
	ADR           float64 `json:"adr"`
	RevPAR        float64 `json:"revpar"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalCapacity int     `json:"totalCapacity"`
}

// POSCategoryRevenue aggregates POS revenue for one product category
type POSCategoryRevenue struct {
	Category         string  `json:"category"`
	CategoryName     string  `json:"categoryName"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transactionCount"`
}

// PaymentMethodBreakdown aggregates completed POS transactions per method
type PaymentMethodBreakdown struct {
	Method     string  `json:"method"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TopProduct is one row of the best-sellers list
type TopProduct struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	QuantitySold int     `json:"quantitySold"`
	Revenue      float64 `json:"revenue"`
	Price        float64 `json:"price"`
}

// RevenueSummary totals revenue across sources for a period
type RevenueSummary struct {
	TotalRoomRevenue    float64 `json:"totalRoomRevenue"`
	TotalPOSRevenue     float64 `json:"totalPOSRevenue"`
	TotalRevenue        float64 `json:"totalRevenue"`
	AvgTransactionValue float64 `json:"avgTransactionValue"`
	TotalTransactions   int     `json:"totalTransactions"`
	TaxCollected        float64 `json:"taxCollected"`
}

// PeriodMetrics is one side of a period comparison
type PeriodMetrics struct {
	Revenue       float64 `json:"revenue"`
	RoomRevenue   float64 `json:"roomRevenue"`
	POSRevenue    float64 `json:"posRevenue"`
	Bookings      int     `json:"bookings"`
	OccupancyRate float64 `json:"occupancyRate"`
	ADR           float64 `json:"adr"`
	RevPAR        float64 `json:"revpar"`
}

// PeriodChanges carries percent changes between the two sides
type PeriodChanges struct {
	Revenue       float64 `json:"revenue"`
	RoomRevenue   float64 `json:"roomRevenue"`
	POSRevenue    float64 `json:"posRevenue"`
	Bookings      float64 `json:"bookings"`
	OccupancyRate float64 `json:"occupancyRate"`
	ADR           float64 `json:"adr"`
	RevPAR        float64 `json:"revpar"`
}

// PeriodComparison compares a window against the window of equal length
// immediately before it
type PeriodComparison struct {
	Current  PeriodMetrics `json:"current"`
	Previous PeriodMetrics `json:"previous"`
	Changes  PeriodChanges `json:"changes"`
}

// ForecastPoint is one month of history or projection
type ForecastPoint struct {
	Month       string  `json:"month"`
	Revenue     float64 `json:"revenue"`
	Occupancy   float64 `json:"occupancy"`
	Bookings    int     `json:"bookings"`
	IsProjected bool    `json:"isProjected"`
}

// TrendDirection labels the slope of a metric
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// ConfidenceLevel labels how much the forecast can be trusted
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// ForecastSummary aggregates the projected months
type ForecastSummary struct {
	ProjectedRevenue   float64         `json:"projectedRevenue"`
	ProjectedOccupancy float64         `json:"projectedOccupancy"`
	ProjectedBookings  int             `json:"projectedBookings"`
	RevenueGrowthRate  float64         `json:"revenueGrowthRate"`
	OccupancyTrend     TrendDirection  `json:"occupancyTrend"`
	Confidence         ConfidenceLevel `json:"confidence"`
}

// ForecastResult is the full forecast response
type ForecastResult struct {
	Historical []ForecastPoint `json:"historical"`
	Forecast   []ForecastPoint `json:"forecast"`
	Summary    ForecastSummary `json:"summary"`
}

// GoalStatus labels goal pacing
type GoalStatus string

const (
	GoalStatusAchieved GoalStatus = "achieved"
	GoalStatusOnTrack  GoalStatus = "on-track"
	GoalStatusAtRisk   GoalStatus = "at-risk"
	GoalStatusBehind   GoalStatus = "behind"
)

// GoalProgress is the computed progress of one goal
type GoalProgress struct {
	Goal          GoalDTO    `json:"goal"`
	Current       float64    `json:"current"`
	Percentage    float64    `json:"percentage"`
	Remaining     float64    `json:"remaining"`
	Status        GoalStatus `json:"status"`
	DaysRemaining int        `json:"daysRemaining"`
}

// GoalDTO is the API shape of a stored goal
type GoalDTO struct {
	ID        uuid.UUID  `json:"id"`
	Type      GoalType   `json:"type"`
	Target    float64    `json:"target"`
	Period    GoalPeriod `json:"period"`
	Month     int        `json:"month"`
	Year      int        `json:"year"`
	CreatedAt string     `json:"createdAt"`
	CreatedBy string     `json:"createdBy,omitempty"`
}

// AlertSeverity orders alerts from most to least urgent
type AlertSeverity string

const (
	AlertSeverityDanger  AlertSeverity = "danger"
	AlertSeverityWarning AlertSeverity = "warning"
	AlertSeverityInfo    AlertSeverity = "info"
	AlertSeveritySuccess AlertSeverity = "success"
)

// Alert is a derived operational alert; IDs are stable per rule
type Alert struct {
	ID        string        `json:"id"`
	Type      AlertSeverity `json:"type"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Metric    string        `json:"metric,omitempty"`
	Threshold string        `json:"threshold,omitempty"`
}

// GuestsByMonth is one month of the booking-channel split
type GuestsByMonth struct {
	Month  string `json:"month"`
	Online int    `json:"online"`
	WalkIn int    `json:"walkIn"`
}

// TopGuest is one row of the highest-spending guests list
type TopGuest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Bookings   int     `json:"bookings"`
	TotalSpent float64 `json:"totalSpent"`
}

// StayDurationBucket counts stays falling into a nights range
type StayDurationBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// GuestAnalytics is the guest behaviour block
type GuestAnalytics struct {
	TotalGuests              int                  `json:"totalGuests"`
	OnlineBookings           int                  `json:"onlineBookings"`
	WalkInBookings           int                  `json:"walkInBookings"`
	OnlinePercentage         float64              `json:"onlinePercentage"`
	WalkInPercentage         float64              `json:"walkInPercentage"`
	RepeatGuests             int                  `json:"repeatGuests"`
	RepeatGuestPercentage    float64              `json:"repeatGuestPercentage"`
	NewGuests                int                  `json:"newGuests"`
	AverageStayDuration      float64              `json:"averageStayDuration"`
	GuestsByMonth            []GuestsByMonth      `json:"guestsByMonth"`
	TopGuests                []TopGuest           `json:"topGuests"`
	StayDurationDistribution []StayDurationBucket `json:"stayDurationDistribution"`
}

// HourCount counts bookings created in one hour of the day
type HourCount struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// DayOfWeekStats aggregates bookings per weekday
type DayOfWeekStats struct {
	Day     string  `json:"day"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// MonthStats aggregates bookings per calendar month
type MonthStats struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// WeekdayWeekendSplit compares Mon-Fri against Sat/Sun
type WeekdayWeekendSplit struct {
	Weekday        int     `json:"weekday"`
	Weekend        int     `json:"weekend"`
	WeekdayRevenue float64 `json:"weekdayRevenue"`
	WeekendRevenue float64 `json:"weekendRevenue"`
}

// PeakAnalysis is the demand-pattern block
type PeakAnalysis struct {
	CheckInsByHour      []HourCount         `json:"checkInsByHour"`
	BookingsByDayOfWeek []DayOfWeekStats    `json:"bookingsByDayOfWeek"`
	BookingsByMonth     []MonthStats        `json:"bookingsByMonth"`
	PeakHour            string              `json:"peakHour"`
	PeakDay             string              `json:"peakDay"`
	PeakMonth           string              `json:"peakMonth"`
	SlowestDay          string              `json:"slowestDay"`
	WeekdayVsWeekend    WeekdayWeekendSplit `json:"weekdayVsWeekend"`
}

// RoomPerformance is one room's ranking row
type RoomPerformance struct {
	RoomID         string  `json:"roomId"`
	RoomType       string  `json:"roomType"`
	TotalBookings  int     `json:"totalBookings"`
	TotalRevenue   float64 `json:"totalRevenue"`
	AverageRevenue float64 `json:"averageRevenue"`
	OccupancyRate  float64 `json:"occupancyRate"`
	AverageStay    float64 `json:"averageStay"`
	Rank           int     `json:"rank"`
}

// RoomPerformanceReport ranks all rooms by revenue
type RoomPerformanceReport struct {
	Rooms            []RoomPerformance `json:"rooms"`
	TopPerformer     *RoomPerformance  `json:"topPerformer"`
	LowestPerformer  *RoomPerformance  `json:"lowestPerformer"`
	TotalRoomRevenue float64           `json:"totalRoomRevenue"`
	AverageOccupancy float64           `json:"averageOccupancy"`
}

// ReportBundle is the combined block rendered into report emails.
// OccupancyRate here is a whole percentage, unlike the series.
type ReportBundle struct {
	TotalRevenue        float64  `json:"totalRevenue"`
	RoomRevenue         float64  `json:"roomRevenue"`
	POSRevenue          float64  `json:"posRevenue"`
	OccupancyRate       float64  `json:"occupancyRate"`
	TotalBookings       int      `json:"totalBookings"`
	OnlineBookings      int      `json:"onlineBookings"`
	WalkInBookings      int      `json:"walkInBookings"`
	AverageStayDuration float64  `json:"averageStayDuration"`
	TopRoom             string   `json:"topRoom,omitempty"`
	Alerts              []string `json:"alerts"`
}

// ScheduledReportDTO is the API shape of a report subscription
type ScheduledReportDTO struct {
	ID         uuid.UUID       `json:"id"`
	Email      string          `json:"email"`
	Frequency  ReportFrequency `json:"frequency"`
	DayOfWeek  *int            `json:"dayOfWeek,omitempty"`
	DayOfMonth *int            `json:"dayOfMonth,omitempty"`
	Hour       int             `json:"hour"`
	Enabled    bool            `json:"enabled"`
	Sections   []string        `json:"sections,omitempty"`
	LastSent   *string         `json:"lastSent,omitempty"`
	CreatedAt  string          `json:"createdAt"`
	CreatedBy  string          `json:"createdBy,omitempty"`
}

// AuditLogDTO is the API shape of an audit entry
type AuditLogDTO struct {
	ID          uuid.UUID     `json:"id"`
	Action      string        `json:"action"`
	Category    AuditCategory `json:"category"`
	Description string        `json:"description"`
	UserID      string        `json:"userId"`
	UserName    string        `json:"userName,omitempty"`
	UserEmail   string        `json:"userEmail,omitempty"`
	Metadata    string        `json:"metadata,omitempty"`
	IPAddress   string        `json:"ipAddress,omitempty"`
	Timestamp   string        `json:"timestamp"`
}

// Request DTOs

// CreateGoalRequest creates a performance goal
type CreateGoalRequest struct {
	Type   GoalType   `json:"type" validate:"required,oneof=revenue occupancy bookings"`
	Target float64    `json:"target" validate:"required,gt=0"`
	Period GoalPeriod `json:"period" validate:"required,oneof=monthly quarterly yearly"`
	Month  int        `json:"month" validate:"gte=0,lte=11"`
	Year   int        `json:"year" validate:"required,gte=2000,lte=2100"`
}

// CreateScheduledReportRequest creates a report subscription
type CreateScheduledReportRequest struct {
	Email      string          `json:"email" validate:"required,email"`
	Frequency  ReportFrequency `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	DayOfWeek  *int            `json:"dayOfWeek" validate:"omitempty,gte=0,lte=6"`
	DayOfMonth *int            `json:"dayOfMonth" validate:"omitempty,gte=1,lte=31"`
	Hour       int             `json:"hour" validate:"gte=0,lte=23"`
	Enabled    *bool           `json:"enabled"`
	Sections   []string        `json:"sections" validate:"omitempty,dive,oneof=full room_revenue pos_revenue occupancy bookings alerts"`
}

// UpdateScheduledReportRequest patches a report subscription
type UpdateScheduledReportRequest struct {
	Email      *string          `json:"email" validate:"omitempty,email"`
	Frequency  *ReportFrequency `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	DayOfWeek  *int             `json:"dayOfWeek" validate:"omitempty,gte=0,lte=6"`
	DayOfMonth *int             `json:"dayOfMonth" validate:"omitempty,gte=1,lte=31"`
	Hour       *int             `json:"hour" validate:"omitempty,gte=0,lte=23"`
	Enabled    *bool            `json:"enabled"`
	Sections   []string         `json:"sections" validate:"omitempty,dive,oneof=full room_revenue pos_revenue occupancy bookings alerts"`
}

// SendReportRequest triggers an immediate report email
type SendReportRequest struct {
	Email      string          `json:"email" validate:"required,email"`
	ReportType ReportFrequency `json:"reportType" validate:"required,oneof=daily weekly monthly"`
	Sections   []string        `json:"sections" validate:"omitempty,dive,oneof=full room_revenue pos_revenue occupancy bookings alerts"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// ToDTO converts a stored goal for the API
func (g *Goal) ToDTO() GoalDTO {
	return GoalDTO{
		ID:        g.ID,
		Type:      g.Type,
		Target:    g.Target,
		Period:    g.Period,
		Month:     g.Month,
		Year:      g.Year,
		CreatedAt: g.CreatedAt.UTC().Format(time.RFC3339),
		CreatedBy: g.CreatedBy,
	}
}

// ToDTO converts a stored subscription for the API
func (r *ScheduledReport) ToDTO() ScheduledReportDTO {
	dto := ScheduledReportDTO{
		ID:         r.ID,
		Email:      r.Email,
		Frequency:  r.Frequency,
		DayOfWeek:  r.DayOfWeek,
		DayOfMonth: r.DayOfMonth,
		Hour:       r.Hour,
		Enabled:    r.Enabled,
		Sections:   r.Sections,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		CreatedBy:  r.CreatedBy,
	}
	if r.LastSent != nil {
		s := r.LastSent.UTC().Format(time.RFC3339)
		dto.LastSent = &s
	}
	return dto
}

// ToDTO converts a stored audit entry for the API
func (a *AuditLog) ToDTO() AuditLogDTO {
	return AuditLogDTO{
		ID:          a.ID,
		Action:      a.Action,
		Category:    a.Category,
		Description: a.Description,
		UserID:      a.UserID,
		UserName:    a.UserName,
		UserEmail:   a.UserEmail,
		Metadata:    a.Metadata,
		IPAddress:   a.IPAddress,
		Timestamp:   a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
