package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BookingStatus represents the lifecycle state of a booking as written by
// the front-desk system
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCheckedIn BookingStatus = "checked-in"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CountsForRevenue reports whether a booking in this status contributes to
// revenue, booking counts and ADR.
func (s BookingStatus) CountsForRevenue() bool {
	return s == BookingStatusPaid || s == BookingStatusCompleted
}

// CountsForOccupancy reports whether a booking in this status contributes to
// occupied nights. Checked-in guests occupy a room before payment settles.
func (s BookingStatus) CountsForOccupancy() bool {
	return s == BookingStatusPaid || s == BookingStatusCheckedIn || s == BookingStatusCompleted
}

// POSTransactionStatus represents the state of a point-of-sale transaction
type POSTransactionStatus string

const (
	POSStatusPending   POSTransactionStatus = "pending"
	POSStatusCompleted POSTransactionStatus = "completed"
	POSStatusVoided    POSTransactionStatus = "voided"
	POSStatusRefunded  POSTransactionStatus = "refunded"
)

// Room represents a physical hotel room maintained by the front-desk system
type Room struct {
	BaseModel
	Number        string         `gorm:"type:varchar(20);not null;unique;index"`
	Type          string         `gorm:"type:varchar(100);not null;index"`
	PricePerNight float64        `gorm:"not null;default:0;column:price_per_night"`
	Capacity      int            `gorm:"not null;default:2"`
	Amenities     pq.StringArray `gorm:"type:text[]"`
	Floor         int            `gorm:"not null;default:1"`
	IsActive      bool           `gorm:"not null;default:true;column:is_active"`
}

// Booking represents a room reservation. BookedAt is the creation timestamp
// reported by the booking channel; it can be zero for legacy imports, in
// which case the check-in date stands in for it (see EffectiveDate).
type Booking struct {
	BaseModel
	RoomID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	Room       *Room         `gorm:"foreignKey:RoomID"`
	RoomType   string        `gorm:"type:varchar(100);not null"`
	GuestID    *uuid.UUID    `gorm:"type:uuid;index"`
	GuestName  string        `gorm:"type:varchar(200);not null"`
	GuestEmail string        `gorm:"type:varchar(255)"`
	GuestPhone string        `gorm:"type:varchar(50)"`
	CheckIn    time.Time     `gorm:"type:date;not null;index;column:check_in"`
	CheckOut   time.Time     `gorm:"type:date;not null;column:check_out"`
	Status     BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalPrice float64       `gorm:"not null;default:0;column:total_price"`
	IsWalkIn   bool          `gorm:"not null;default:false;column:is_walk_in"`
	BookedAt   *time.Time    `gorm:"column:booked_at"`
}

// EffectiveDate is the date a booking is attributed to for revenue and
// booking-count purposes: the channel timestamp when present, otherwise the
// check-in date.
func (b *Booking) EffectiveDate() time.Time {
	if b.BookedAt != nil && !b.BookedAt.IsZero() {
		return *b.BookedAt
	}
	return b.CheckIn
}

// POSCategory groups point-of-sale products (foods, services, ...)
type POSCategory struct {
	ID        string    `gorm:"type:varchar(50);primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// POSProduct is an item sold through the point-of-sale system
type POSProduct struct {
	BaseModel
	Name       string       `gorm:"type:varchar(200);not null"`
	CategoryID string       `gorm:"type:varchar(50);not null;index;column:category_id"`
	Category   *POSCategory `gorm:"foreignKey:CategoryID"`
	Price      float64      `gorm:"not null;default:0"`
	IsActive   bool         `gorm:"not null;default:true;column:is_active"`
}

// POSTransaction is a point-of-sale sale with its line items
type POSTransaction struct {
	BaseModel
	Status        POSTransactionStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string               `gorm:"type:varchar(50);column:payment_method"`
	Subtotal      float64              `gorm:"not null;default:0"`
	Tax           float64              `gorm:"not null;default:0"`
	Total         float64              `gorm:"not null;default:0"`
	Items         []POSTransactionItem `gorm:"foreignKey:TransactionID"`
}

// POSTransactionItem is a single line on a POS transaction
type POSTransactionItem struct {
	BaseModel
	TransactionID uuid.UUID   `gorm:"type:uuid;not null;index;column:transaction_id"`
	ProductID     uuid.UUID   `gorm:"type:uuid;not null;index;column:product_id"`
	Product       *POSProduct `gorm:"foreignKey:ProductID"`
	Quantity      int         `gorm:"not null;default:1"`
	UnitPrice     float64     `gorm:"not null;default:0;column:unit_price"`
	TotalPrice    float64     `gorm:"not null;default:0;column:total_price"`
}

// Guest is a person who has stayed or booked at the hotel
type Guest struct {
	BaseModel
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(255);index"`
	Phone string `gorm:"type:varchar(50)"`
}

// GoalType selects which metric a performance goal tracks
type GoalType string

const (
	GoalTypeRevenue   GoalType = "revenue"
	GoalTypeOccupancy GoalType = "occupancy"
	GoalTypeBookings  GoalType = "bookings"
)

// GoalPeriod selects the window a goal spans
type GoalPeriod string

const (
	GoalPeriodMonthly   GoalPeriod = "monthly"
	GoalPeriodQuarterly GoalPeriod = "quarterly"
	GoalPeriodYearly    GoalPeriod = "yearly"
)

// Goal is a management performance target. Month is 0-based (January = 0),
// matching the convention the dashboard writes.
type Goal struct {
	BaseModel
	Type      GoalType   `gorm:"type:varchar(20);not null"`
	Target    float64    `gorm:"not null"`
	Period    GoalPeriod `gorm:"type:varchar(20);not null"`
	Month     int        `gorm:"not null"`
	Year      int        `gorm:"not null"`
	CreatedBy string     `gorm:"type:varchar(255);column:created_by"`
}

// ReportFrequency is how often a scheduled report goes out
type ReportFrequency string

const (
	ReportFrequencyDaily   ReportFrequency = "daily"
	ReportFrequencyWeekly  ReportFrequency = "weekly"
	ReportFrequencyMonthly ReportFrequency = "monthly"
)

// ReportSection names a content filter for the emailed report. "full"
// includes everything; room and POS revenue are selectable independently.
type ReportSection string

const (
	ReportSectionFull        ReportSection = "full"
	ReportSectionRoomRevenue ReportSection = "room_revenue"
	ReportSectionPOSRevenue  ReportSection = "pos_revenue"
	ReportSectionOccupancy   ReportSection = "occupancy"
	ReportSectionBookings    ReportSection = "bookings"
	ReportSectionAlerts      ReportSection = "alerts"
)

// ScheduledReport is a recurring email report subscription.
// DayOfWeek (0=Sunday) applies to weekly schedules, DayOfMonth to monthly.
type ScheduledReport struct {
	BaseModel
	Email      string          `gorm:"type:varchar(255);not null"`
	Frequency  ReportFrequency `gorm:"type:varchar(20);not null"`
	DayOfWeek  *int            `gorm:"column:day_of_week"`
	DayOfMonth *int            `gorm:"column:day_of_month"`
	Hour       int             `gorm:"not null;default:8"`
	Enabled    bool            `gorm:"not null;default:true"`
	Sections   pq.StringArray  `gorm:"type:text[]"`
	LastSent   *time.Time      `gorm:"column:last_sent"`
	CreatedBy  string          `gorm:"type:varchar(255);column:created_by"`
}

// AuditCategory classifies audit log entries by the entity they touch
type AuditCategory string

const (
	AuditCategoryBooking  AuditCategory = "booking"
	AuditCategoryPayment  AuditCategory = "payment"
	AuditCategoryGuest    AuditCategory = "guest"
	AuditCategoryRoom     AuditCategory = "room"
	AuditCategoryPOS      AuditCategory = "pos"
	AuditCategorySettings AuditCategory = "settings"
	AuditCategoryAuth     AuditCategory = "auth"
	AuditCategoryReport   AuditCategory = "report"
	AuditCategoryGoal     AuditCategory = "goal"
)

// AuditLog records a user-visible action against the back office
type AuditLog struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Action      string        `gorm:"type:varchar(100);not null;index"`
	Category    AuditCategory `gorm:"type:varchar(50);not null;index"`
	Description string        `gorm:"type:text;not null"`
	UserID      string        `gorm:"type:varchar(255);not null;index;column:user_id"`
	UserName    string        `gorm:"type:varchar(200);column:user_name"`
	UserEmail   string        `gorm:"type:varchar(255);column:user_email"`
	Metadata    string        `gorm:"type:jsonb;default:'{}'"`
	IPAddress   string        `gorm:"type:varchar(45);column:ip_address"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}
