package model

import "time"

// VehicleStatus is the fleet state of a vehicle.  Only available
// vehicles can be reserved; the other states exist for the operator's
// fleet management.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleInactive    VehicleStatus = "inactive"
)

// Valid reports whether s is one of the known fleet states.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleAvailable, VehicleRented, VehicleMaintenance, VehicleInactive:
		return true
	}
	return false
}

// Vehicle is one rentable unit of the fleet.
type Vehicle struct {
	ID          uint64        `json:"id"`
	Brand       string        `json:"brand"`
	Model       string        `json:"model"`
	PlateNumber string        `json:"plate_number"`
	DailyRate   float64       `json:"daily_rate"`
	Status      VehicleStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
