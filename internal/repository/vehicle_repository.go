package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
)

// VehicleRepo provides read and fleet-management access to the vehicles
// table.  The reservation flow only reads from it; status changes come
// from operator endpoints.
type VehicleRepo struct {
	db *sql.DB
}

// NewVehicleRepo returns a VehicleRepo bound to the given database.
func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleColumns = "id, brand, model, plate_number, daily_rate, status, created_at, updated_at"

func scanVehicle(row interface{ Scan(...any) error }) (model.Vehicle, error) {
	var v model.Vehicle
	err := row.Scan(&v.ID, &v.Brand, &v.Model, &v.PlateNumber, &v.DailyRate, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// GetByID fetches one vehicle.  ErrVehicleNotFound is returned when the
// id does not exist.
func (r *VehicleRepo) GetByID(ctx context.Context, id uint64) (model.Vehicle, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+vehicleColumns+" FROM vehicles WHERE id=? LIMIT 1", id)
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Vehicle{}, ErrVehicleNotFound
	}
	return v, err
}

// List returns vehicles ordered by brand and model.  When status is
// non-empty only vehicles in that state are returned; clients browsing
// for a rental pass "available".
func (r *VehicleRepo) List(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	q := "SELECT " + vehicleColumns + " FROM vehicles"
	args := []any{}
	if status != "" {
		q += " WHERE status=?"
		args = append(args, status)
	}
	q += " ORDER BY brand, model"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Create inserts a vehicle and populates its generated id.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO vehicles (brand, model, plate_number, daily_rate, status) VALUES (?,?,?,?,?)",
		v.Brand, v.Model, v.PlateNumber, v.DailyRate, v.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// UpdateStatus moves a vehicle to the given fleet state.
func (r *VehicleRepo) UpdateStatus(ctx context.Context, id uint64, status model.VehicleStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE vehicles SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the id does not exist or the status is unchanged; check
		// existence so callers get the right error.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
