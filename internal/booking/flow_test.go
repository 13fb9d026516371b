package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
)

// stubVehicles serves a fixed vehicle map for availability re-checks.
type stubVehicles struct {
	vehicles map[uint64]model.Vehicle
}

func (s *stubVehicles) GetByID(_ context.Context, id uint64) (model.Vehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return model.Vehicle{}, errors.New("vehicle not found")
	}
	return v, nil
}

func testVehicle() model.Vehicle {
	return model.Vehicle{
		ID:        7,
		Brand:     "Dacia",
		Model:     "Logan",
		DailyRate: 100,
		Status:    model.VehicleAvailable,
	}
}

func newTestFlow(t *testing.T) (*Flow, *MemoryStore, *stubVehicles) {
	t.Helper()
	store := NewMemoryStore()
	vehicles := &stubVehicles{vehicles: map[uint64]model.Vehicle{7: testVehicle()}}
	f := NewFlow(42, store, vehicles)
	if err := f.StartDetails(testVehicle()); err != nil {
		t.Fatalf("StartDetails failed: %v", err)
	}
	return f, store, vehicles
}

func TestStartDetailsRejectsUnavailableVehicle(t *testing.T) {
	f := NewFlow(42, NewMemoryStore(), nil)
	v := testVehicle()
	v.Status = model.VehicleMaintenance
	if err := f.StartDetails(v); err != ErrVehicleUnavailable {
		t.Fatalf("StartDetails on maintenance vehicle: got %v, want ErrVehicleUnavailable", err)
	}
}

func TestSubmitDetailsValidation(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	cases := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"missing start", time.Time{}, day(4), ErrMissingRequiredField},
		{"missing end", day(1), time.Time{}, ErrMissingRequiredField},
		{"equal dates", day(1), day(1), ErrInvalidDateRange},
		{"reversed dates", day(4), day(1), ErrInvalidDateRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, _, _ := newTestFlow(t)
			_, err := f.SubmitDetails(tc.start, tc.end, "")
			if err != tc.wantErr {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
			if f.State() != StateDetails {
				t.Fatalf("failed submit must not change state, got %s", f.State())
			}
		})
	}
}

func TestSubmitDetailsPricesTheStay(t *testing.T) {
	f, _, _ := newTestFlow(t)
	res, err := f.SubmitDetails(
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		"airport pickup",
	)
	if err != nil {
		t.Fatalf("SubmitDetails failed: %v", err)
	}
	if res.TotalDays != 3 || res.TotalAmount != 300 {
		t.Fatalf("got days=%d amount=%v, want days=3 amount=300", res.TotalDays, res.TotalAmount)
	}
	if f.State() != StatePayment {
		t.Fatalf("flow in %s after submit, want %s", f.State(), StatePayment)
	}
}

func TestSelectPaymentMethodBeforeDetails(t *testing.T) {
	f, _, _ := newTestFlow(t)
	if _, _, err := f.SelectPaymentMethod(context.Background(), model.PayCash); err != ErrMissingRequiredField {
		t.Fatalf("select before submit: got %v, want ErrMissingRequiredField", err)
	}
}

func TestSelectPaymentMethodAssignsCodeOnce(t *testing.T) {
	ctx := context.Background()
	f, _, _ := newTestFlow(t)
	mustSubmit(t, f)
	code1, amount, err := f.SelectPaymentMethod(ctx, model.PayCard)
	if err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}
	if amount != 300 {
		t.Fatalf("amount = %v, want 300", amount)
	}
	// Re-selecting (e.g. after dismissing a dialog) keeps the code the
	// client already saw on the payment screen.
	code2, _, err := f.SelectPaymentMethod(ctx, model.PayCash)
	if err != nil {
		t.Fatalf("re-select failed: %v", err)
	}
	if code1 != code2 {
		t.Fatalf("code changed on re-select: %q then %q", code1, code2)
	}
}

// End-to-end: 100/day, 2025-06-01 to 2025-06-04, cash, confirm.
func TestFinalizePersistsPendingReservation(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlow(t)
	mustSubmit(t, f)
	code, _, err := f.SelectPaymentMethod(ctx, model.PayCash)
	if err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}
	res, err := f.Finalize(ctx)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if res == nil {
		t.Fatal("Finalize returned no reservation")
	}
	if res.Status != model.ReservationPending {
		t.Fatalf("status = %s, want pending", res.Status)
	}
	if res.Code != code {
		t.Fatalf("persisted code %q differs from payment-screen code %q", res.Code, code)
	}
	// The date in the code reflects the generation instant, not the stay.
	wantPrefix := "REZ" + time.Now().UTC().Format("20060102")
	if !regexp.MustCompile(`^` + wantPrefix + `-\d{3}$`).MatchString(res.Code) {
		t.Fatalf("code %q does not match %s-<3 digits>", res.Code, wantPrefix)
	}
	if res.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set at finalize")
	}
	items, _ := store.List(ctx)
	if len(items) != 1 || items[0].ID != res.ID {
		t.Fatalf("store does not hold exactly the finalized reservation: %+v", items)
	}
	if f.State() != StatePersisted {
		t.Fatalf("flow in %s after finalize, want %s", f.State(), StatePersisted)
	}
}

// End-to-end: going back after selecting a method leaves the store
// untouched and discards the assigned code.
func TestBackToDetailsDiscardsCode(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlow(t)
	mustSubmit(t, f)
	if _, _, err := f.SelectPaymentMethod(ctx, model.PayCard); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}
	f.BackToDetails()
	if f.State() != StateDetails {
		t.Fatalf("flow in %s after back, want %s", f.State(), StateDetails)
	}
	if items, _ := store.List(ctx); len(items) != 0 {
		t.Fatalf("store gained %d entries without a completed payment", len(items))
	}
	// Resubmitting and selecting again must produce a fresh code path,
	// not reuse a stale one from the abandoned payment step.
	mustSubmit(t, f)
	code, _, err := f.SelectPaymentMethod(ctx, model.PayCash)
	if err != nil {
		t.Fatalf("re-select after back failed: %v", err)
	}
	if code == "" {
		t.Fatal("no code assigned after returning to details")
	}
}

// Double-fired completion callbacks must yield exactly one store entry.
func TestFinalizeIdempotentOnDoubleFire(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlow(t)
	mustSubmit(t, f)
	if _, _, err := f.SelectPaymentMethod(ctx, model.PayTransfer); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}
	if _, err := f.Finalize(ctx); err != nil {
		t.Fatalf("first Finalize failed: %v", err)
	}
	res, err := f.Finalize(ctx)
	if err != nil {
		t.Fatalf("second Finalize must be a silent no-op, got %v", err)
	}
	if res != nil {
		t.Fatalf("second Finalize returned a reservation: %+v", res)
	}
	if items, _ := store.List(ctx); len(items) != 1 {
		t.Fatalf("store holds %d entries after double finalize, want 1", len(items))
	}
}

func TestFinalizeWithoutPaymentSelection(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlow(t)
	mustSubmit(t, f)
	if _, err := f.Finalize(ctx); err != ErrMissingRequiredField {
		t.Fatalf("finalize without method: got %v, want ErrMissingRequiredField", err)
	}
	if items, _ := store.List(ctx); len(items) != 0 {
		t.Fatalf("store gained entries from an unordered finalize")
	}
}

// The vehicle went to maintenance between selection and payment
// completion; finalize must refuse instead of persisting a reservation
// for an unavailable vehicle.
func TestFinalizeRechecksAvailability(t *testing.T) {
	ctx := context.Background()
	f, store, vehicles := newTestFlow(t)
	mustSubmit(t, f)
	if _, _, err := f.SelectPaymentMethod(ctx, model.PayCard); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}
	v := vehicles.vehicles[7]
	v.Status = model.VehicleMaintenance
	vehicles.vehicles[7] = v
	if _, err := f.Finalize(ctx); err != ErrVehicleUnavailable {
		t.Fatalf("finalize on unavailable vehicle: got %v, want ErrVehicleUnavailable", err)
	}
	if items, _ := store.List(ctx); len(items) != 0 {
		t.Fatalf("store gained entries despite unavailable vehicle")
	}
	if f.State() != StatePayment {
		t.Fatalf("failed finalize must leave flow in %s, got %s", StatePayment, f.State())
	}
}

func mustSubmit(t *testing.T, f *Flow) {
	t.Helper()
	_, err := f.SubmitDetails(
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		"",
	)
	if err != nil {
		t.Fatalf("SubmitDetails failed: %v", err)
	}
}
