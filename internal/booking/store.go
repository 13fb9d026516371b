package booking

import (
	"context"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
)

// Store is the boundary a finalized reservation is handed to.  The flow
// calls only Add; the remaining operations serve listing views and
// operator administration.  Implementations must assign Reservation.ID
// on Add and reject duplicate codes with ErrDuplicateCode.
type Store interface {
	Add(ctx context.Context, r *model.Reservation) error
	Update(ctx context.Context, id uint64, status model.ReservationStatus) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]model.Reservation, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// VehicleSource provides read-only vehicle lookups.  The flow uses it to
// re-check availability at finalize time.
type VehicleSource interface {
	GetByID(ctx context.Context, id uint64) (model.Vehicle, error)
}
