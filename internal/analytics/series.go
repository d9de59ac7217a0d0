package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// occupiesDate reports whether a booking holds a room on the given date.
// Only paid and checked-in stays block a room on a single day; completed
// stays are historical and only matter for night totals.
func occupiesDate(b *domain.Booking, date time.Time) bool {
	if b.Status != domain.BookingStatusPaid && b.Status != domain.BookingStatusCheckedIn {
		return false
	}
	d := dateOnly(date)
	return !dateOnly(b.CheckIn).After(d) && !dateOnly(b.CheckOut).Before(d)
}

// RoomTypes groups rooms by type and counts the rooms of each type that are
// occupied on the target date. Rate and amenities come from the first room
// seen of a type; capacity is the largest in the group.
func RoomTypes(snap *Snapshot, date time.Time) []domain.RoomTypeSummary {
	if len(snap.Rooms) == 0 {
		return []domain.RoomTypeSummary{}
	}

	byType := make(map[string]*domain.RoomTypeSummary)
	var order []string
	for _, room := range snap.Rooms {
		summary, ok := byType[room.Type]
		if !ok {
			summary = &domain.RoomTypeSummary{
				Type:      room.Type,
				Rate:      room.PricePerNight,
				Capacity:  room.Capacity,
				Amenities: append([]string{}, room.Amenities...),
			}
			byType[room.Type] = summary
			order = append(order, room.Type)
		}
		summary.Total++
		if room.Capacity > summary.Capacity {
			summary.Capacity = room.Capacity
		}
	}

	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if !occupiesDate(b, date) {
			continue
		}
		if summary, ok := byType[b.RoomType]; ok {
			summary.Occupied++
		}
	}

	result := make([]domain.RoomTypeSummary, 0, len(order))
	for _, t := range order {
		result = append(result, *byType[t])
	}
	return result
}

// RecentBookings returns the ten most recent bookings touching the window,
// newest check-in first. A booking touches the window when either stay bound
// falls inside it or the stay spans it entirely.
func RecentBookings(snap *Snapshot, period Period) []domain.BookingSummary {
	start := dateOnly(period.Start)
	end := dateOnly(period.End)

	var matched []*domain.Booking
	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		in := dateOnly(b.CheckIn)
		out := dateOnly(b.CheckOut)
		touches := (!in.Before(start) && !in.After(end)) ||
			(!out.Before(start) && !out.After(end)) ||
			(!in.After(start) && !out.Before(end))
		if touches {
			matched = append(matched, b)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CheckIn.After(matched[j].CheckIn)
	})
	if len(matched) > 10 {
		matched = matched[:10]
	}

	result := make([]domain.BookingSummary, 0, len(matched))
	for _, b := range matched {
		result = append(result, domain.BookingSummary{
			ID:         shortID(b.ID),
			Guest:      b.GuestName,
			Room:       b.RoomType,
			CheckIn:    dateOnly(b.CheckIn).Format("2006-01-02"),
			CheckOut:   dateOnly(b.CheckOut).Format("2006-01-02"),
			Status:     string(b.Status),
			TotalPrice: b.TotalPrice,
			IsWalkIn:   b.IsWalkIn,
		})
	}
	return result
}

// shortID is the six-character booking reference shown to staff
func shortID(id uuid.UUID) string {
	s := strings.ReplaceAll(id.String(), "-", "")
	return strings.ToUpper(s[len(s)-6:])
}

// BookingStats counts revenue-bearing bookings in the window split by channel
func BookingStats(snap *Snapshot, period Period) domain.BookingStats {
	stats := domain.BookingStats{}
	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if !period.Contains(b.EffectiveDate()) {
			continue
		}
		if !b.Status.CountsForRevenue() {
			continue
		}
		stats.Total++
		if b.IsWalkIn {
			stats.WalkIn++
		} else {
			stats.Online++
		}
		stats.TotalRevenue += b.TotalPrice
	}
	return stats
}

// DailyOccupancy scans each day of the window and counts rooms held that day
func DailyOccupancy(snap *Snapshot, period Period) []domain.DailyOccupancy {
	totalRooms := snap.TotalRooms()
	days := []domain.DailyOccupancy{}

	for d := dateOnly(period.Start); !d.After(dateOnly(period.End)); d = d.AddDate(0, 0, 1) {
		occupied := 0
		for i := range snap.Bookings {
			if occupiesDate(&snap.Bookings[i], d) {
				occupied++
			}
		}
		rate := 0.0
		if totalRooms > 0 {
			rate = float64(occupied) / float64(totalRooms) * 100
		}
		days = append(days, domain.DailyOccupancy{
			Date:      fmt.Sprintf("%s %d", d.Month().String()[:3], d.Day()),
			Occupied:  occupied,
			Available: totalRooms - occupied,
			Rate:      round1(rate),
		})
	}
	return days
}

// MonthlyOccupancy computes the occupancy rate per calendar month in the
// window from overlap nights against the month's full capacity
func MonthlyOccupancy(snap *Snapshot, period Period) []domain.MonthlyOccupancy {
	totalRooms := snap.TotalRooms()
	months := []domain.MonthlyOccupancy{}

	cursor := time.Date(period.Start.Year(), period.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(period.End.Year(), period.End.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !cursor.After(last) {
		year, month := cursor.Year(), cursor.Month()
		monthStart, monthEnd := monthBounds(year, month)
		totalNights := totalRooms * daysInMonth(year, month)

		occupiedNights := 0
		for i := range snap.Bookings {
			b := &snap.Bookings[i]
			if !b.Status.CountsForOccupancy() {
				continue
			}
			occupiedNights += OverlapNights(dateOnly(b.CheckIn), dateOnly(b.CheckOut), monthStart, monthEnd)
		}

		rate := 0.0
		if totalNights > 0 {
			rate = float64(occupiedNights) / float64(totalNights) * 100
		}
		months = append(months, domain.MonthlyOccupancy{
			Month: monthNames[month-1],
			Rate:  round1(rate),
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

// MonthlyRevenue splits each month's revenue into rooms, restaurant (foods
// category) and spa (all other POS). Transactions without line items fall
// into the spa bucket at their subtotal.
func MonthlyRevenue(snap *Snapshot, period Period) []domain.MonthlyRevenue {
	productCategory := snap.productCategoryIndex()

	itemsByTransaction := make(map[uuid.UUID][]*domain.POSTransactionItem)
	for i := range snap.Items {
		item := &snap.Items[i]
		itemsByTransaction[item.TransactionID] = append(itemsByTransaction[item.TransactionID], item)
	}

	months := []domain.MonthlyRevenue{}
	cursor := time.Date(period.Start.Year(), period.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(period.End.Year(), period.End.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !cursor.After(last) {
		year, month := cursor.Year(), cursor.Month()
		row := domain.MonthlyRevenue{Month: monthNames[month-1]}

		for i := range snap.Bookings {
			b := &snap.Bookings[i]
			if !b.Status.CountsForRevenue() {
				continue
			}
			if sameMonth(b.EffectiveDate(), year, month) {
				row.Rooms += b.TotalPrice
			}
		}

		for i := range snap.Transactions {
			t := &snap.Transactions[i]
			if t.Status != domain.POSStatusCompleted || !sameMonth(t.CreatedAt, year, month) {
				continue
			}
			items := itemsByTransaction[t.ID]
			if len(items) == 0 {
				row.Spa += t.Subtotal
				continue
			}
			for _, item := range items {
				if productCategory[item.ProductID] == "foods" {
					row.Restaurant += item.TotalPrice
				} else {
					row.Spa += item.TotalPrice
				}
			}
		}

		months = append(months, row)
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

// POSCategoryRevenue aggregates completed POS line items by product category
func CategoryRevenue(snap *Snapshot) []domain.POSCategoryRevenue {
	productCategory := snap.productCategoryIndex()
	categoryName := snap.categoryNameIndex()
	transactions := snap.transactionIndex()

	type agg struct {
		revenue      float64
		transactions map[uuid.UUID]struct{}
	}
	byCategory := make(map[string]*agg)
	var order []string

	for i := range snap.Items {
		item := &snap.Items[i]
		t, ok := transactions[item.TransactionID]
		if !ok || t.Status != domain.POSStatusCompleted {
			continue
		}
		categoryID := productCategory[item.ProductID]
		if categoryID == "" {
			categoryID = "other"
		}
		a, ok := byCategory[categoryID]
		if !ok {
			a = &agg{transactions: make(map[uuid.UUID]struct{})}
			byCategory[categoryID] = a
			order = append(order, categoryID)
		}
		a.revenue += item.TotalPrice
		a.transactions[item.TransactionID] = struct{}{}
	}

	result := make([]domain.POSCategoryRevenue, 0, len(order))
	for _, id := range order {
		a := byCategory[id]
		name := categoryName[id]
		if name == "" {
			name = id
		}
		result = append(result, domain.POSCategoryRevenue{
			Category:         id,
			CategoryName:     name,
			Revenue:          a.revenue,
			TransactionCount: len(a.transactions),
		})
	}
	return result
}

// PaymentMethods breaks completed POS transactions down by payment method
func PaymentMethods(snap *Snapshot) []domain.PaymentMethodBreakdown {
	type agg struct {
		amount float64
		count  int
	}
	byMethod := make(map[string]*agg)
	var order []string
	total := 0.0

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Status != domain.POSStatusCompleted {
			continue
		}
		method := t.PaymentMethod
		if method == "" {
			method = "unknown"
		}
		a, ok := byMethod[method]
		if !ok {
			a = &agg{}
			byMethod[method] = a
			order = append(order, method)
		}
		a.amount += t.Total
		a.count++
		total += t.Total
	}

	result := make([]domain.PaymentMethodBreakdown, 0, len(order))
	for _, method := range order {
		a := byMethod[method]
		pct := 0.0
		if total > 0 {
			pct = a.amount / total * 100
		}
		result = append(result, domain.PaymentMethodBreakdown{
			Method:     strings.ToUpper(method[:1]) + method[1:],
			Amount:     a.amount,
			Count:      a.count,
			Percentage: pct,
		})
	}
	return result
}

// TopProducts ranks products by revenue across completed transactions
func TopProducts(snap *Snapshot, limit int) []domain.TopProduct {
	transactions := snap.transactionIndex()
	categoryName := snap.categoryNameIndex()

	productIndex := make(map[uuid.UUID]*domain.POSProduct, len(snap.Products))
	for i := range snap.Products {
		productIndex[snap.Products[i].ID] = &snap.Products[i]
	}

	type agg struct {
		quantity int
		revenue  float64
	}
	sales := make(map[uuid.UUID]*agg)
	var order []uuid.UUID

	for i := range snap.Items {
		item := &snap.Items[i]
		t, ok := transactions[item.TransactionID]
		if !ok || t.Status != domain.POSStatusCompleted {
			continue
		}
		a, ok := sales[item.ProductID]
		if !ok {
			a = &agg{}
			sales[item.ProductID] = a
			order = append(order, item.ProductID)
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		a.quantity += qty
		a.revenue += item.TotalPrice
	}

	result := make([]domain.TopProduct, 0, len(order))
	for _, id := range order {
		a := sales[id]
		row := domain.TopProduct{
			ID:           id.String(),
			Name:         id.String(),
			Category:     "other",
			QuantitySold: a.quantity,
			Revenue:      a.revenue,
		}
		if p, ok := productIndex[id]; ok {
			row.Name = p.Name
			row.Price = p.Price
			row.Category = p.CategoryID
			if name := categoryName[p.CategoryID]; name != "" {
				row.Category = name
			}
		}
		result = append(result, row)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Revenue > result[j].Revenue
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// RevenueSummaryFor totals revenue across sources for the window
func RevenueSummaryFor(snap *Snapshot, period Period) domain.RevenueSummary {
	summary := domain.RevenueSummary{}

	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if !b.Status.CountsForRevenue() || !period.Contains(b.EffectiveDate()) {
			continue
		}
		summary.TotalRoomRevenue += b.TotalPrice
	}

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Status != domain.POSStatusCompleted || !period.Contains(t.CreatedAt) {
			continue
		}
		summary.TotalPOSRevenue += t.Total
		summary.TaxCollected += t.Tax
		summary.TotalTransactions++
	}

	summary.TotalRevenue = summary.TotalRoomRevenue + summary.TotalPOSRevenue
	if summary.TotalTransactions > 0 {
		summary.AvgTransactionValue = summary.TotalPOSRevenue / float64(summary.TotalTransactions)
	}
	return summary
}

// KPIs derives the dashboard headline block from the room-type snapshot and
// the monthly revenue series
func KPIs(roomTypes []domain.RoomTypeSummary, monthlyRevenue []domain.MonthlyRevenue) domain.KPIBlock {
	totalRooms, occupiedRooms, totalCapacity := 0, 0, 0
	roomRevenue := 0.0
	for _, rt := range roomTypes {
		totalRooms += rt.Total
		occupiedRooms += rt.Occupied
		totalCapacity += rt.Capacity * rt.Total
		roomRevenue += float64(rt.Occupied) * rt.Rate
	}

	occupancyRate := 0.0
	if totalRooms > 0 {
		occupancyRate = float64(occupiedRooms) / float64(totalRooms) * 100
	}
	adr := 0.0
	if occupiedRooms > 0 {
		adr = roomRevenue / float64(occupiedRooms)
	}
	revpar := 0.0
	if totalRooms > 0 {
		revpar = roomRevenue / float64(totalRooms)
	}

	totalRevenue := 0.0
	for _, m := range monthlyRevenue {
		totalRevenue += m.Rooms + m.Restaurant + m.Spa + m.Other
	}

	return domain.KPIBlock{
		OccupancyRate: round1(occupancyRate),
		ADR:           round2(adr),
		RevPAR:        round2(revpar),
		TotalRevenue:  totalRevenue,
		TotalCapacity: totalCapacity,
	}
}
