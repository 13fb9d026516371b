package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/vehicle-rental-reservation/internal/booking"
	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
)

// ReservationRepo persists reservations in MySQL.  It satisfies
// booking.Store, so the reservation flow hands finalized records
// straight to it, and adds the listing and administration queries the
// HTTP layer needs.  The reservations.code column carries a unique key;
// a duplicate insert surfaces as booking.ErrDuplicateCode so the code
// generator can retry.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = "id, code, client_id, vehicle_id, start_date, end_date, total_days, total_amount, status, observations, created_at"

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var res model.Reservation
	var obs sql.NullString
	err := row.Scan(&res.ID, &res.Code, &res.ClientID, &res.VehicleID,
		&res.StartDate, &res.EndDate, &res.TotalDays, &res.TotalAmount,
		&res.Status, &obs, &res.CreatedAt)
	if obs.Valid {
		res.Observations = obs.String
	}
	return res, err
}

// Add inserts a finalized reservation and populates its generated id.
// MySQL error 1062 (duplicate key on code) maps to booking.ErrDuplicateCode.
func (r *ReservationRepo) Add(ctx context.Context, res *model.Reservation) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reservations
		   (code, client_id, vehicle_id, start_date, end_date, total_days, total_amount, status, observations, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		res.Code, res.ClientID, res.VehicleID, res.StartDate, res.EndDate,
		res.TotalDays, res.TotalAmount, res.Status, res.Observations, res.CreatedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return booking.ErrDuplicateCode
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// Update moves a reservation to the given status, enforcing the
// forward-only lifecycle inside a transaction: the current status is
// read with a row lock, checked, then written.
func (r *ReservationRepo) Update(ctx context.Context, id uint64, status model.ReservationStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var current model.ReservationStatus
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM reservations WHERE id=? FOR UPDATE", id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	if !current.CanTransitionTo(status) {
		return booking.ErrInvalidTransition
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", status, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a reservation outright.  Operator use only; clients
// cancel instead, which keeps the record.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.ErrReservationNotFound
	}
	return nil
}

// List returns all reservations, newest first.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// CodeExists reports whether any reservation carries the given code.
func (r *ReservationRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM reservations WHERE code=? LIMIT 1", code).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ReservationDetail is a reservation joined with the vehicle it claims,
// as shown in list and detail views.
type ReservationDetail struct {
	model.Reservation
	VehicleBrand string `json:"vehicle_brand"`
	VehicleModel string `json:"vehicle_model"`
	PlateNumber  string `json:"plate_number"`
}

const detailQuery = `SELECT r.id, r.code, r.client_id, r.vehicle_id, r.start_date, r.end_date,
                            r.total_days, r.total_amount, r.status, r.observations, r.created_at,
                            v.brand, v.model, v.plate_number
                     FROM reservations r
                     JOIN vehicles v ON v.id = r.vehicle_id`

func scanDetail(row interface{ Scan(...any) error }) (ReservationDetail, error) {
	var d ReservationDetail
	var obs sql.NullString
	err := row.Scan(&d.ID, &d.Code, &d.ClientID, &d.VehicleID, &d.StartDate, &d.EndDate,
		&d.TotalDays, &d.TotalAmount, &d.Status, &obs, &d.CreatedAt,
		&d.VehicleBrand, &d.VehicleModel, &d.PlateNumber)
	if obs.Valid {
		d.Observations = obs.String
	}
	return d, err
}

// ListByClient returns the client's reservations with vehicle details,
// newest first.  An empty slice is returned when none exist.
func (r *ReservationRepo) ListByClient(ctx context.Context, clientID uint64) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		detailQuery+" WHERE r.client_id=? ORDER BY r.created_at DESC", clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListAll returns every reservation with vehicle details, newest first.
// Operator view.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, detailQuery+" ORDER BY r.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByIDForClient returns one reservation with vehicle details,
// enforcing ownership: a reservation belonging to another client yields
// ErrForbidden, a missing one sql.ErrNoRows.
func (r *ReservationRepo) GetByIDForClient(ctx context.Context, id, clientID uint64) (ReservationDetail, error) {
	row := r.db.QueryRowContext(ctx, detailQuery+" WHERE r.id=?", id)
	d, err := scanDetail(row)
	if err != nil {
		return ReservationDetail{}, err
	}
	if d.ClientID != clientID {
		return ReservationDetail{}, ErrForbidden
	}
	return d, nil
}

// CancelForClient moves the client's reservation to cancelled.  The
// rental must not have started: once active or completed the transition
// is rejected with ErrConflict, and another client's reservation with
// ErrForbidden.
func (r *ReservationRepo) CancelForClient(ctx context.Context, id, clientID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var owner uint64
	var current model.ReservationStatus
	err = tx.QueryRowContext(ctx,
		"SELECT client_id, status FROM reservations WHERE id=? FOR UPDATE", id).
		Scan(&owner, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	if owner != clientID {
		return ErrForbidden
	}
	if current == model.ReservationActive || !current.CanTransitionTo(model.ReservationCancelled) {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", model.ReservationCancelled, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
