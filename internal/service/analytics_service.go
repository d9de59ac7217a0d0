package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/minima-hotel/backoffice-api/internal/analytics"
	"github.com/minima-hotel/backoffice-api/internal/domain"
	"go.uber.org/zap"
)

const (
	forecastMinMonths = 1
	forecastMaxMonths = 12
)

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// AnalyticsService computes reporting figures over a snapshot of the
// operational data. Results are cached per operation and parameter set;
// RefreshAll drops the cache so the next read recomputes.
type AnalyticsService struct {
	snapshots snapshotLoader
	logger    *zap.Logger

	cacheEnabled bool
	cacheTTL     time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewAnalyticsService(snapshots snapshotLoader, cacheEnabled bool, cacheTTL time.Duration, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		snapshots:    snapshots,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
		cache:        make(map[string]cacheEntry),
	}
}

// cached runs compute under the result cache. The snapshot is only loaded on
// a miss, so cache hits never touch the database.
func (s *AnalyticsService) cached(ctx context.Context, key string, compute func(snap *analytics.Snapshot) interface{}) (interface{}, error) {
	if s.cacheEnabled {
		s.mu.Lock()
		if entry, ok := s.cache[key]; ok && time.Now().Before(entry.expiresAt) {
			s.mu.Unlock()
			return entry.value, nil
		}
		s.mu.Unlock()
	}

	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}

	value := compute(snap)

	if s.cacheEnabled {
		s.mu.Lock()
		s.cache[key] = cacheEntry{value: value, expiresAt: time.Now().Add(s.cacheTTL)}
		s.mu.Unlock()
	}

	return value, nil
}

// RefreshAll drops every cached result. The next read of each operation
// recomputes from a fresh snapshot.
func (s *AnalyticsService) RefreshAll() {
	s.mu.Lock()
	n := len(s.cache)
	s.cache = make(map[string]cacheEntry)
	s.mu.Unlock()
	s.logger.Info("analytics cache cleared", zap.Int("entries", n))
}

func periodKey(p analytics.Period) string {
	return fmt.Sprintf("%d-%d", p.Start.Unix(), p.End.Unix())
}

func optionalPeriodKey(p *analytics.Period) string {
	if p == nil {
		return "all"
	}
	return periodKey(*p)
}

// RoomTypes summarises inventory and occupancy per room type for a date.
func (s *AnalyticsService) RoomTypes(ctx context.Context, date time.Time) ([]domain.RoomTypeSummary, error) {
	key := fmt.Sprintf("room-types|%s", date.Format("2006-01-02"))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.RoomTypes(snap, date)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.RoomTypeSummary), nil
}

func (s *AnalyticsService) RecentBookings(ctx context.Context, period analytics.Period) ([]domain.BookingSummary, error) {
	key := fmt.Sprintf("recent-bookings|%s", periodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.RecentBookings(snap, period)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.BookingSummary), nil
}

func (s *AnalyticsService) BookingStats(ctx context.Context, period analytics.Period) (*domain.BookingStats, error) {
	key := fmt.Sprintf("booking-stats|%s", periodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.BookingStats(snap, period)
	})
	if err != nil {
		return nil, err
	}
	stats := v.(domain.BookingStats)
	return &stats, nil
}

func (s *AnalyticsService) DailyOccupancy(ctx context.Context, period analytics.Period) ([]domain.DailyOccupancy, error) {
	key := fmt.Sprintf("daily-occupancy|%s", periodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.DailyOccupancy(snap, period)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.DailyOccupancy), nil
}

func (s *AnalyticsService) MonthlyOccupancy(ctx context.Context, period analytics.Period) ([]domain.MonthlyOccupancy, error) {
	key := fmt.Sprintf("monthly-occupancy|%s", periodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.MonthlyOccupancy(snap, period)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.MonthlyOccupancy), nil
}

func (s *AnalyticsService) MonthlyRevenue(ctx context.Context, period analytics.Period) ([]domain.MonthlyRevenue, error) {
	key := fmt.Sprintf("monthly-revenue|%s", periodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.MonthlyRevenue(snap, period)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.MonthlyRevenue), nil
}

// KPIs returns the dashboard headline block for today.
func (s *AnalyticsService) KPIs(ctx context.Context, now time.Time, revenuePeriod analytics.Period) (*domain.KPIBlock, error) {
	key := fmt.Sprintf("kpis|%s|%s", now.Format("2006-01-02"), periodKey(revenuePeriod))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		roomTypes := analytics.RoomTypes(snap, now)
		monthly := analytics.MonthlyRevenue(snap, revenuePeriod)
		return analytics.KPIs(roomTypes, monthly)
	})
	if err != nil {
		return nil, err
	}
	block := v.(domain.KPIBlock)
	return &block, nil
}

func (s *AnalyticsService) CategoryRevenue(ctx context.Context) ([]domain.POSCategoryRevenue, error) {
	v, err := s.cached(ctx, "category-revenue", func(snap *analytics.Snapshot) interface{} {
		return analytics.CategoryRevenue(snap)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.POSCategoryRevenue), nil
}

func (s *AnalyticsService) PaymentMethods(ctx context.Context) ([]domain.PaymentMethodBreakdown, error) {
	v, err := s.cached(ctx, "payment-methods", func(snap *analytics.Snapshot) interface{} {
		return analytics.PaymentMethods(snap)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.PaymentMethodBreakdown), nil
}

func (s *AnalyticsService) TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	key := fmt.Sprintf("top-products|%d", limit)
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.TopProducts(snap, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.TopProduct), nil
}

func (s *AnalyticsService) RevenueSummary(ctx context.Context, period analytics.Period) (*domain.RevenueSummary, error) {
	key := fmt.Sprintf("revenue-summary|%s", periodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.RevenueSummaryFor(snap, period)
	})
	if err != nil {
		return nil, err
	}
	summary := v.(domain.RevenueSummary)
	return &summary, nil
}

// Comparison computes current-versus-previous period metrics.
func (s *AnalyticsService) Comparison(ctx context.Context, period analytics.Period) (*domain.PeriodComparison, error) {
	key := fmt.Sprintf("comparison|%s", periodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.Compare(snap, period)
	})
	if err != nil {
		return nil, err
	}
	comparison := v.(domain.PeriodComparison)
	return &comparison, nil
}

// Alerts derives operational alerts from the period comparison.
func (s *AnalyticsService) Alerts(ctx context.Context, period analytics.Period) ([]domain.Alert, error) {
	comparison, err := s.Comparison(ctx, period)
	if err != nil {
		return nil, err
	}
	return analytics.DeriveAlerts(*comparison), nil
}

// Forecast projects revenue, occupancy and bookings ahead. monthsAhead is
// clamped to [1, 12].
func (s *AnalyticsService) Forecast(ctx context.Context, now time.Time, monthsAhead int) (*domain.ForecastResult, error) {
	if monthsAhead < forecastMinMonths {
		monthsAhead = forecastMinMonths
	}
	if monthsAhead > forecastMaxMonths {
		monthsAhead = forecastMaxMonths
	}

	key := fmt.Sprintf("forecast|%s|%d", now.Format("2006-01"), monthsAhead)
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.Forecast(snap, now, monthsAhead)
	})
	if err != nil {
		return nil, err
	}
	result := v.(domain.ForecastResult)
	return &result, nil
}

func (s *AnalyticsService) Guests(ctx context.Context, period *analytics.Period) (*domain.GuestAnalytics, error) {
	key := fmt.Sprintf("guests|%s", optionalPeriodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.Guests(snap, period)
	})
	if err != nil {
		return nil, err
	}
	result := v.(domain.GuestAnalytics)
	return &result, nil
}

func (s *AnalyticsService) Peaks(ctx context.Context, period *analytics.Period) (*domain.PeakAnalysis, error) {
	key := fmt.Sprintf("peaks|%s", optionalPeriodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.Peaks(snap, period)
	})
	if err != nil {
		return nil, err
	}
	result := v.(domain.PeakAnalysis)
	return &result, nil
}

func (s *AnalyticsService) RoomPerformance(ctx context.Context, period analytics.Period) (*domain.RoomPerformanceReport, error) {
	key := fmt.Sprintf("room-performance|%s", periodKey(period))
	v, err := s.cached(ctx, key, func(snap *analytics.Snapshot) interface{} {
		return analytics.RoomPerformanceFor(snap, period)
	})
	if err != nil {
		return nil, err
	}
	result := v.(domain.RoomPerformanceReport)
	return &result, nil
}
