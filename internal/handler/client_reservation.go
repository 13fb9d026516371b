package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vehicle-rental-reservation/internal/booking"
	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
	"github.com/iliyamo/vehicle-rental-reservation/internal/payment"
	"github.com/iliyamo/vehicle-rental-reservation/internal/queue"
	"github.com/iliyamo/vehicle-rental-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/vehicle-rental-reservation/internal/service"
)

const dateLayout = "2006-01-02"

// ClientReservationHandler drives the two-phase reservation flow on
// behalf of clients and serves their reservation listings.  JWT and
// role middleware run before every method; each client has at most one
// open flow at a time, managed by the FlowManager.
type ClientReservationHandler struct {
	Flows        *booking.FlowManager
	Vehicles     *repository.VehicleRepo
	Reservations *repository.ReservationRepo
	Payments     *payment.Router
}

// NewClientReservationHandler constructs the handler.  All dependencies
// must be non-nil.
func NewClientReservationHandler(flows *booking.FlowManager, vehicles *repository.VehicleRepo, reservations *repository.ReservationRepo, payments *payment.Router) *ClientReservationHandler {
	if flows == nil || vehicles == nil || reservations == nil || payments == nil {
		panic("nil dependency passed to NewClientReservationHandler")
	}
	return &ClientReservationHandler{
		Flows:        flows,
		Vehicles:     vehicles,
		Reservations: reservations,
		Payments:     payments,
	}
}

// SubmitDetails handles POST /v1/reservations/details.  It binds the
// client's flow to the chosen vehicle, validates the rental dates and
// prices the stay, moving the flow to the payment step.  Dates are
// plain calendar days in YYYY-MM-DD form; an empty or malformed date is
// passed to the flow as missing so the error taxonomy stays in one
// place.
func (h *ClientReservationHandler) SubmitDetails(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		VehicleID    uint64 `json:"vehicle_id"`
		StartDate    string `json:"start_date"`
		EndDate      string `json:"end_date"`
		Observations string `json:"observations"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.VehicleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle_id is required"})
	}
	ctx := c.Request().Context()
	v, err := h.Vehicles.GetByID(ctx, body.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load vehicle"})
	}

	fl := h.Flows.FlowFor(clientID)
	if err := fl.StartDetails(v); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle is not available"})
	}
	res, err := fl.SubmitDetails(parseDate(body.StartDate), parseDate(body.EndDate), strings.TrimSpace(body.Observations))
	if err != nil {
		return flowError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"state":        booking.StatePayment,
		"vehicle_id":   v.ID,
		"daily_rate":   v.DailyRate,
		"total_days":   res.TotalDays,
		"total_amount": res.TotalAmount,
	})
}

// SelectPaymentMethod handles POST /v1/reservations/payment-method.
// The reservation code is assigned here, shown to the client on the
// payment screen, and one confirmation flow is opened for the chosen
// method.  The returned token identifies the open confirmation.
func (h *ClientReservationHandler) SelectPaymentMethod(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Method string `json:"method"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	method := model.PaymentMethod(strings.ToLower(strings.TrimSpace(body.Method)))
	if !method.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "method must be cash, card or transfer"})
	}

	ctx := c.Request().Context()
	fl := h.Flows.FlowFor(clientID)
	code, amount, err := fl.SelectPaymentMethod(ctx, method)
	if err != nil {
		return flowError(c, err)
	}

	conf, err := h.Payments.Route(method, amount, code, h.finalizeFunc(fl, method))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to open payment confirmation"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":   code,
		"amount": amount,
		"method": conf.Method,
		"token":  conf.Token,
	})
}

// finalizeFunc builds the completion callback for a payment
// confirmation: finalize the flow's reservation and publish the
// finalized event.  Publishing is best effort; a broker outage never
// undoes a persisted reservation.
func (h *ClientReservationHandler) finalizeFunc(fl *booking.Flow, method model.PaymentMethod) payment.CompleteFunc {
	return func(ctx context.Context) error {
		res, err := fl.Finalize(ctx)
		if err != nil {
			return err
		}
		if res == nil {
			return nil // double-fired completion, already persisted
		}
		ev := queue.ReservationFinalizedEvent{
			ReservationID: res.ID,
			Code:          res.Code,
			ClientID:      res.ClientID,
			VehicleID:     res.VehicleID,
			StartDate:     res.StartDate.Format(dateLayout),
			EndDate:       res.EndDate.Format(dateLayout),
			TotalDays:     res.TotalDays,
			TotalAmount:   res.TotalAmount,
			PaymentMethod: string(method),
			FinalizedAt:   res.CreatedAt.Format(time.RFC3339),
		}
		if v, verr := h.Vehicles.GetByID(ctx, res.VehicleID); verr == nil {
			ev.VehicleBrand = v.Brand
			ev.VehicleModel = v.Model
		}
		if perr := queue_publisher.PublishReservationFinalized(ctx, ev); perr != nil {
			log.Printf("reservation: publish finalized event failed: %v", perr)
		}
		return nil
	}
}

// BackToDetails handles POST /v1/reservations/back.  The flow returns
// to the details step and the assigned code is discarded.
func (h *ClientReservationHandler) BackToDetails(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	h.Flows.FlowFor(clientID).BackToDetails()
	return c.JSON(http.StatusOK, echo.Map{"state": booking.StateDetails})
}

// CompletePayment handles POST /v1/payments/:token/complete.  The user
// confirmed the payment dialog; the matching confirmation fires its
// completion callback, which finalizes the reservation.
func (h *ClientReservationHandler) CompletePayment(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	token := c.Param("token")
	err := h.Payments.Complete(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, payment.ErrUnknownConfirmation) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown confirmation"})
		}
		if errors.Is(err, booking.ErrVehicleUnavailable) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle no longer available"})
		}
		if errors.Is(err, booking.ErrDuplicateCode) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation code already exists"})
		}
		if errors.Is(err, booking.ErrMissingRequiredField) {
			// The flow left the payment step (e.g. the client went back to
			// details) while this confirmation stayed open.
			return c.JSON(http.StatusConflict, echo.Map{"error": "no payment is awaited for this reservation"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to finalize reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "completed"})
}

// DismissPayment handles POST /v1/payments/:token/dismiss.  The user
// closed the dialog without paying; nothing transitions and the flow
// stays in the payment step, another method re-selectable.
func (h *ClientReservationHandler) DismissPayment(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Payments.Dismiss(c.Param("token")); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown confirmation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "dismissed"})
}

// ListMine handles GET /v1/my-reservations.
func (h *ClientReservationHandler) ListMine(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Reservations.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOne handles GET /v1/reservations/:id.  404 when missing, 403 when
// owned by another client.
func (h *ClientReservationHandler) GetOne(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	detail, err := h.Reservations.GetByIDForClient(c.Request().Context(), id, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// Cancel handles DELETE /v1/reservations/:id.  A client may cancel a
// reservation that has not started; once the rental is active or done
// the request conflicts.
func (h *ClientReservationHandler) Cancel(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	err = h.Reservations.CancelForClient(c.Request().Context(), id, clientID)
	if err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation can no longer be cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}

// parseDate parses a YYYY-MM-DD string; anything unparseable comes back
// as the zero time, which the flow treats as a missing field.
func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// flowError maps the booking error taxonomy to HTTP responses.  Every
// flow failure is local and recoverable, so these are all 4xx.
func flowError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidDateRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start date must be before end date"})
	case errors.Is(err, booking.ErrMissingRequiredField):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required field"})
	case errors.Is(err, booking.ErrVehicleUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle is not available"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation flow failed"})
	}
}
