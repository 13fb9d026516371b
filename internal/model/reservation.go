package model

import "time"

// ReservationStatus is the lifecycle state of a reservation.  A newly
// persisted reservation always starts as PENDING; fleet operations move
// it forward through CONFIRMED, ACTIVE and COMPLETED.  CANCELLED is a
// terminal state reachable from any non-terminal one.  Transitions never
// move backward.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// statusRank orders the forward-moving states.  Cancelled has no rank;
// it is handled separately as the terminal escape state.
var statusRank = map[ReservationStatus]int{
	ReservationPending:   0,
	ReservationConfirmed: 1,
	ReservationActive:    2,
	ReservationCompleted: 3,
}

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool {
	if s == ReservationCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle step.  Completed and cancelled reservations accept no
// further transitions; every other move must be strictly forward or
// into cancelled.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if !s.Valid() || !next.Valid() || s == next {
		return false
	}
	if s == ReservationCancelled || s == ReservationCompleted {
		return false
	}
	if next == ReservationCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

// Reservation is a client's claim on a vehicle for a date range.  It is
// built exactly once, at finalize time, and its derived fields
// (TotalDays, TotalAmount) are never edited afterwards.  Code is the
// human-readable identifier surfaced to users and on rental documents;
// ID is the internal store identifier.
type Reservation struct {
	ID           uint64            `json:"id"`
	Code         string            `json:"code"`
	ClientID     uint64            `json:"client_id"`
	VehicleID    uint64            `json:"vehicle_id"`
	StartDate    time.Time         `json:"start_date"`
	EndDate      time.Time         `json:"end_date"`
	TotalDays    int               `json:"total_days"`
	TotalAmount  float64           `json:"total_amount"`
	Status       ReservationStatus `json:"status"`
	Observations string            `json:"observations,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}
