package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vehicle-rental-reservation/internal/booking"
	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
	"github.com/iliyamo/vehicle-rental-reservation/internal/payment"
)

func completeRequest(e *echo.Echo, token string, clientID uint64) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/"+token+"/complete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues(token)
	c.Set("user_id", clientID)
	return c, rec
}

// Completing a confirmation whose flow already went back to the details
// step must conflict, not persist anything and not read as a server
// fault.
func TestCompletePaymentAfterBackConflicts(t *testing.T) {
	ctx := context.Background()
	store := booking.NewMemoryStore()
	flows := booking.NewFlowManager(store, nil)
	h := &ClientReservationHandler{Flows: flows, Payments: payment.NewRouter()}

	fl := flows.FlowFor(42)
	v := model.Vehicle{ID: 7, Brand: "Dacia", Model: "Logan", DailyRate: 100, Status: model.VehicleAvailable}
	if err := fl.StartDetails(v); err != nil {
		t.Fatalf("StartDetails failed: %v", err)
	}
	if _, err := fl.SubmitDetails(
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		"",
	); err != nil {
		t.Fatalf("SubmitDetails failed: %v", err)
	}
	code, amount, err := fl.SelectPaymentMethod(ctx, model.PayCash)
	if err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}
	conf, err := h.Payments.Route(model.PayCash, amount, code, h.finalizeFunc(fl, model.PayCash))
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	// The dialog stays open while the client abandons the payment step.
	fl.BackToDetails()

	e := echo.New()
	c, rec := completeRequest(e, conf.Token, 42)
	if err := h.CompletePayment(c); err != nil {
		t.Fatalf("CompletePayment returned %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if items, _ := store.List(ctx); len(items) != 0 {
		t.Fatalf("store gained %d reservations from a stale confirmation", len(items))
	}
}

func TestCompletePaymentUnknownToken(t *testing.T) {
	flows := booking.NewFlowManager(booking.NewMemoryStore(), nil)
	h := &ClientReservationHandler{Flows: flows, Payments: payment.NewRouter()}

	e := echo.New()
	c, rec := completeRequest(e, "deadbeef", 42)
	if err := h.CompletePayment(c); err != nil {
		t.Fatalf("CompletePayment returned %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
