package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vehicle-rental-reservation/internal/booking"
	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
	"github.com/iliyamo/vehicle-rental-reservation/internal/repository"
)

// OperatorReservationHandler serves the back-office reservation
// endpoints: listing every reservation, advancing statuses as rentals
// progress and deleting records.  Role middleware restricts these to
// OPERATOR and ADMIN.
type OperatorReservationHandler struct {
	Reservations *repository.ReservationRepo
}

func NewOperatorReservationHandler(r *repository.ReservationRepo) *OperatorReservationHandler {
	return &OperatorReservationHandler{Reservations: r}
}

// ListAll handles GET /v1/admin/reservations, newest first.
func (h *OperatorReservationHandler) ListAll(c echo.Context) error {
	items, err := h.Reservations.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateStatus handles PATCH /v1/admin/reservations/:id/status.
// Statuses only move forward through the rental lifecycle; an illegal
// jump conflicts instead of silently rewriting history.
func (h *OperatorReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := model.ReservationStatus(strings.ToLower(strings.TrimSpace(body.Status)))
	if !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if err := h.Reservations.Update(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, booking.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "illegal status transition"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

// Delete handles DELETE /v1/admin/reservations/:id.
func (h *OperatorReservationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}
