// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a rental booking is accepted.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type BookingCreatedEvent struct {
	BookingID   uint64   `json:"booking_id"`
	Code        string   `json:"code"`
	OwnerID     *uint64  `json:"owner_id,omitempty"`
	Console     string   `json:"console"`
	Period      string   `json:"period"`
	Controllers int      `json:"controllers"`
	Duration    int      `json:"duration"`
	Games       []string `json:"games"`
	StartAt     string   `json:"start_at"`
	EndAt       string   `json:"end_at"`
	Total       int      `json:"total"`
	CreatedAt   string   `json:"created_at"`
}

// BookingStatusEvent is published when an admin moves a booking to a
// new status.
type BookingStatusEvent struct {
	BookingID uint64 `json:"booking_id"`
	Code      string `json:"code"`
	Status    string `json:"status"`
	ChangedAt string `json:"changed_at"`
}
