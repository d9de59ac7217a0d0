// Package analytics computes all reporting figures from in-memory record
// snapshots. Every function here is pure: records in, numbers out. Status
// filtering, date attribution and rounding rules all live in this package so
// the HTTP and persistence layers never have to know them.
package analytics

import (
	"github.com/google/uuid"

	"github.com/minima-hotel/backoffice-api/internal/domain"
)

// Snapshot is the full set of records a computation may need. Slices may be
// empty; every computation yields zero values for empty input.
type Snapshot struct {
	Rooms        []domain.Room
	Guests       []domain.Guest
	Bookings     []domain.Booking
	Transactions []domain.POSTransaction
	Items        []domain.POSTransactionItem
	Products     []domain.POSProduct
	Categories   []domain.POSCategory
}

// TotalRooms is the room count used as the occupancy denominator
func (s *Snapshot) TotalRooms() int {
	return len(s.Rooms)
}

// guestIndex maps guest ID to the guest directory record
func (s *Snapshot) guestIndex() map[uuid.UUID]*domain.Guest {
	idx := make(map[uuid.UUID]*domain.Guest, len(s.Guests))
	for i := range s.Guests {
		idx[s.Guests[i].ID] = &s.Guests[i]
	}
	return idx
}

// productCategoryIndex maps product ID to its category ID
func (s *Snapshot) productCategoryIndex() map[uuid.UUID]string {
	idx := make(map[uuid.UUID]string, len(s.Products))
	for _, p := range s.Products {
		idx[p.ID] = p.CategoryID
	}
	return idx
}

// categoryNameIndex maps category ID to its display name
func (s *Snapshot) categoryNameIndex() map[string]string {
	idx := make(map[string]string, len(s.Categories))
	for _, c := range s.Categories {
		idx[c.ID] = c.Name
	}
	return idx
}

// transactionIndex maps transaction ID to the transaction
func (s *Snapshot) transactionIndex() map[uuid.UUID]*domain.POSTransaction {
	idx := make(map[uuid.UUID]*domain.POSTransaction, len(s.Transactions))
	for i := range s.Transactions {
		idx[s.Transactions[i].ID] = &s.Transactions[i]
	}
	return idx
}
