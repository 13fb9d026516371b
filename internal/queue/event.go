// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// ReservationFinalizedEvent is published when a reservation is
// committed to the store after a successful payment confirmation.  It
// carries enough for downstream consumers (notifications, documents,
// analytics) to act without querying the primary database.
type ReservationFinalizedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	Code          string  `json:"code"`
	ClientID      uint64  `json:"client_id"`
	VehicleID     uint64  `json:"vehicle_id"`
	VehicleBrand  string  `json:"vehicle_brand"`
	VehicleModel  string  `json:"vehicle_model"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     int     `json:"total_days"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
	FinalizedAt   string  `json:"finalized_at"`
}
