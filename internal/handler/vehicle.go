package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
	"github.com/iliyamo/vehicle-rental-reservation/internal/repository"
)

// VehicleHandler serves the public fleet browse endpoints and the
// operator fleet-management endpoints.
type VehicleHandler struct {
	Vehicles *repository.VehicleRepo
}

// NewVehicleHandler constructs a VehicleHandler; the repository must be
// non-nil.
func NewVehicleHandler(vehicles *repository.VehicleRepo) *VehicleHandler {
	if vehicles == nil {
		panic("nil repository passed to NewVehicleHandler")
	}
	return &VehicleHandler{Vehicles: vehicles}
}

// List handles GET /v1/vehicles.  The optional ?status= query filters
// by fleet state; clients looking for a rental pass status=available.
func (h *VehicleHandler) List(c echo.Context) error {
	var status model.VehicleStatus
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status = model.VehicleStatus(strings.ToLower(raw))
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
		}
	}
	items, err := h.Vehicles.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load vehicles"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/vehicles/:id.
func (h *VehicleHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}
	v, err := h.Vehicles.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load vehicle"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": v})
}

// Create handles POST /v1/admin/vehicles.  Operator only.
func (h *VehicleHandler) Create(c echo.Context) error {
	var body struct {
		Brand       string  `json:"brand"`
		Model       string  `json:"model"`
		PlateNumber string  `json:"plate_number"`
		DailyRate   float64 `json:"daily_rate"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Brand = strings.TrimSpace(body.Brand)
	body.Model = strings.TrimSpace(body.Model)
	if body.Brand == "" || body.Model == "" || body.DailyRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "brand, model and a positive daily_rate are required"})
	}
	v := model.Vehicle{
		Brand:       body.Brand,
		Model:       body.Model,
		PlateNumber: strings.TrimSpace(body.PlateNumber),
		DailyRate:   body.DailyRate,
		Status:      model.VehicleAvailable,
	}
	if err := h.Vehicles.Create(c.Request().Context(), &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create vehicle"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": v})
}

// UpdateStatus handles PATCH /v1/admin/vehicles/:id/status.  Operator
// only; moves a vehicle between fleet states.
func (h *VehicleHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := model.VehicleStatus(strings.ToLower(strings.TrimSpace(body.Status)))
	if !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if err := h.Vehicles.UpdateStatus(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update vehicle"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}
