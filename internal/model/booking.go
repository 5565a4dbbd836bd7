package model

import "time"

// Booking statuses. The initial status is always StatusPending; the
// other values are only ever set through the admin status update.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Consoles and rental periods accepted by the validator.
const (
	ConsolePS5 = "ps5"
	ConsolePS4 = "ps4"

	PeriodHourly = "hourly"
	PeriodDaily  = "daily"
)

// Contact is the customer contact block embedded in a booking. All
// four fields are mandatory; no format validation beyond presence.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Booking records a single console rental as stored in the `bookings`
// table. The price snapshot is computed server-side at creation time
// and never recomputed afterwards.
//
// Fields:
//  ID          – primary key identifier.
//  Code        – short human-readable booking code (unique).
//  OwnerID     – account the booking is attached to, via token or contact email (nullable).
//  Console     – ps5 | ps4.
//  Games       – up to five selected game identifiers.
//  Period      – hourly | daily billing granularity.
//  Controllers – controller count, 1..4.
//  Duration    – hours (hourly) or days (daily), >= 1.
//  IsMember    – membership discount flag used for the price snapshot.
//  StartAt     – rental window start (UTC), strictly before EndAt.
//  EndAt       – rental window end (UTC).
//  StartLabel  – human-readable start string for display only.
//  EndLabel    – human-readable end string for display only.
//  TZ          – display timezone, presentation only.
//  Contact     – customer contact block.
//  IDImage     – filename of the uploaded ID document (optional).
//  HolderImage – filename of the uploaded person-with-ID photo (optional).
//  Total       – price snapshot from the rate tables.
//  Status      – pending | confirmed | cancelled.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
	ID          uint64    `json:"id"`           // bookings.id
	Code        string    `json:"code"`         // bookings.code
	OwnerID     *uint64   `json:"owner_id"`     // bookings.owner_id (nullable)
	Console     string    `json:"console"`      // bookings.console
	Games       []string  `json:"games"`        // bookings.games (JSON column)
	Period      string    `json:"period"`       // bookings.period
	Controllers int       `json:"controllers"`  // bookings.controllers
	Duration    int       `json:"duration"`     // bookings.duration
	IsMember    bool      `json:"is_member"`    // bookings.is_member
	StartAt     time.Time `json:"start_at"`     // bookings.start_at
	EndAt       time.Time `json:"end_at"`       // bookings.end_at
	StartLabel  string    `json:"start_label"`  // bookings.start_label
	EndLabel    string    `json:"end_label"`    // bookings.end_label
	TZ          string    `json:"tz"`           // bookings.tz
	Contact     Contact   `json:"contact"`      // bookings.contact (JSON column)
	IDImage     string    `json:"id_image"`     // bookings.id_image
	HolderImage string    `json:"holder_image"` // bookings.holder_image
	Total       int       `json:"total"`        // bookings.total
	Status      string    `json:"status"`       // bookings.status
	CreatedAt   time.Time `json:"created_at"`   // bookings.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // bookings.updated_at
}
