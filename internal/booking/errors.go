// Package booking owns the reservation lifecycle: the two-phase
// details/payment flow, code generation and the store boundary a
// finalized reservation is handed to.
package booking

import "errors"

// ErrInvalidDateRange is returned when the submitted start date is not
// strictly before the end date.  The flow stays in its current state and
// the client may resubmit corrected dates.
var ErrInvalidDateRange = errors.New("start date must be before end date")

// ErrMissingRequiredField is returned when a required detail is absent,
// including calling a later flow step before its prerequisite (e.g.
// selecting a payment method with no submitted details).
var ErrMissingRequiredField = errors.New("missing required field")

// ErrVehicleUnavailable is returned when the chosen vehicle is not (or
// no longer) in the available state.  Finalize re-checks availability
// because the vehicle may have changed state between selection and
// payment confirmation.
var ErrVehicleUnavailable = errors.New("vehicle is not available")

// ErrDuplicateCode is returned by a Store when a reservation with the
// same code already exists.  The code generator retries on it.
var ErrDuplicateCode = errors.New("reservation code already exists")

// ErrReservationNotFound is returned by a Store when no reservation
// matches the given id.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrInvalidTransition is returned when a status update would move a
// reservation backward in its lifecycle or out of a terminal state.
var ErrInvalidTransition = errors.New("invalid status transition")
