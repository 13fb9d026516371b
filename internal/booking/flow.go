package booking

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
	"github.com/iliyamo/vehicle-rental-reservation/internal/pricing"
)

// State names the step a reservation flow is currently in.
type State string

const (
	// StateDetails is the initial step: the client has picked a vehicle
	// and is entering the rental dates.
	StateDetails State = "DETAILS"
	// StatePayment means details were accepted and the client is choosing
	// or confirming a payment method.
	StatePayment State = "PAYMENT"
	// StatePersisted is terminal: the reservation has been handed to the
	// store and the flow holds nothing.
	StatePersisted State = "PERSISTED"
)

// Flow drives one client's reservation from vehicle selection to a
// persisted record.  It exclusively owns the transient reservation built
// in SubmitDetails; ownership transfers to the Store exactly once, in
// Finalize, and never before.  All methods are safe for the single
// logical writer of a session; the mutex only guards against a UI
// double-firing callbacks.
type Flow struct {
	mu       sync.Mutex
	clientID uint64
	state    State
	vehicle  model.Vehicle
	pending  *model.Reservation
	method   model.PaymentMethod

	store    Store
	vehicles VehicleSource
	now      func() time.Time
}

// NewFlow returns a flow in the Details state for the given client.
// vehicles may be nil, in which case the finalize-time availability
// re-check is skipped (memory-only deployments).
func NewFlow(clientID uint64, store Store, vehicles VehicleSource) *Flow {
	return &Flow{
		clientID: clientID,
		state:    StateDetails,
		store:    store,
		vehicles: vehicles,
		now:      time.Now,
	}
}

// State returns the current flow step.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// StartDetails binds the flow to a vehicle.  Only available vehicles can
// start a reservation; anything else is rejected so the caller can keep
// showing its vehicle picker.
func (f *Flow) StartDetails(v model.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.Status != model.VehicleAvailable {
		return ErrVehicleUnavailable
	}
	f.vehicle = v
	f.pending = nil
	f.method = ""
	f.state = StateDetails
	return nil
}

// SubmitDetails validates the rental dates, prices the stay and builds
// the transient reservation, moving the flow to the Payment step.  On
// any validation failure the flow state is unchanged and the client may
// resubmit.  Equal start and end dates are rejected: a rental is at
// least one full day.
func (f *Flow) SubmitDetails(start, end time.Time, observations string) (model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.vehicle.ID == 0 {
		return model.Reservation{}, ErrMissingRequiredField
	}
	if start.IsZero() || end.IsZero() {
		return model.Reservation{}, ErrMissingRequiredField
	}
	if !start.Before(end) {
		return model.Reservation{}, ErrInvalidDateRange
	}
	days := pricing.ComputeDays(start, end)
	f.pending = &model.Reservation{
		ClientID:     f.clientID,
		VehicleID:    f.vehicle.ID,
		StartDate:    start,
		EndDate:      end,
		TotalDays:    days,
		TotalAmount:  pricing.ComputeTotal(days, f.vehicle.DailyRate),
		Observations: observations,
	}
	f.state = StatePayment
	return *f.pending, nil
}

// SelectPaymentMethod records the chosen method and assigns the
// reservation code.  The code is generated here, not earlier, so that it
// reflects the moment the client committed to a payment path; it is
// generated at most once per submitted details (re-selecting a method
// after dismissing a confirmation keeps the code already shown).
func (f *Flow) SelectPaymentMethod(ctx context.Context, m model.PaymentMethod) (code string, amount float64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StatePayment || f.pending == nil {
		return "", 0, ErrMissingRequiredField
	}
	if !m.Valid() {
		return "", 0, ErrMissingRequiredField
	}
	if f.pending.Code == "" {
		c, err := UniqueCode(ctx, f.store, f.now())
		if err != nil {
			return "", 0, err
		}
		f.pending.Code = c
	}
	f.method = m
	return f.pending.Code, f.pending.TotalAmount, nil
}

// BackToDetails returns the flow to the Details step.  The assigned code
// is discarded and will be regenerated on the next payment-method
// selection; the entered dates survive in the transient reservation in
// case the client resubmits unchanged.
func (f *Flow) BackToDetails() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StatePersisted {
		return
	}
	if f.pending != nil {
		f.pending.Code = ""
	}
	f.method = ""
	f.state = StateDetails
}

// Finalize commits the transient reservation to the store.  It is called
// only by a payment confirmation completing.  The vehicle's availability
// is re-checked first: its status may have changed between selection and
// payment completion.  A second Finalize with nothing pending is a
// logged no-op, because confirmation dialogs have been seen to fire
// their completion callback twice.
func (f *Flow) Finalize(ctx context.Context) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil || f.state == StatePersisted {
		log.Printf("flow: finalize with no pending reservation (client=%d), ignoring", f.clientID)
		return nil, nil
	}
	if f.state != StatePayment || f.pending.Code == "" {
		// Finalize must be preceded by a payment-method selection in the
		// same flow instance.
		return nil, ErrMissingRequiredField
	}
	if f.vehicles != nil {
		v, err := f.vehicles.GetByID(ctx, f.pending.VehicleID)
		if err != nil {
			return nil, err
		}
		if v.Status != model.VehicleAvailable {
			return nil, ErrVehicleUnavailable
		}
	}
	f.pending.Status = model.ReservationPending
	f.pending.CreatedAt = f.now().UTC()
	if err := f.store.Add(ctx, f.pending); err != nil {
		f.pending.Status = ""
		f.pending.CreatedAt = time.Time{}
		return nil, err
	}
	res := f.pending
	f.pending = nil
	f.state = StatePersisted
	return res, nil
}
