package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mihman/internal/models"
)

const reservationColumns = `id, guest_id, hotel_id, hotel_name, price, total_price, nights,
                            check_in, check_out, adults, children, notes,
                            status_booking, status_checkin, status_checkout,
                            created_at, updated_at`

func (db *DB) CreateReservation(ctx context.Context, r *models.Reservation) error {
	query := `INSERT INTO reservations (
				id, guest_id, hotel_id, hotel_name, price, total_price, nights,
				check_in, check_out, adults, children, notes,
				status_booking, status_checkin, status_checkout, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		r.ID,
		r.GuestID,
		r.HotelID,
		r.HotelName,
		r.Price,
		r.TotalPrice,
		r.Nights,
		r.CheckIn,
		r.CheckOut,
		r.Adults,
		r.Children,
		r.Notes,
		r.BookingStatus,
		r.CheckInStatus,
		r.CheckOutStatus,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

func (db *DB) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	r, err := scanReservation(db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return r, nil
}

func (db *DB) ListReservationsByHotel(ctx context.Context, hotelID string) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE hotel_id = ? ORDER BY created_at DESC`
	return db.listReservations(ctx, query, hotelID)
}

func (db *DB) ListReservationsByGuest(ctx context.Context, guestID string) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE guest_id = ? ORDER BY created_at DESC`
	return db.listReservations(ctx, query, guestID)
}

func (db *DB) ListReservationsByDateRange(ctx context.Context, from, to string) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE check_in >= ? AND check_in <= ? ORDER BY check_in ASC`
	return db.listReservations(ctx, query, from, to)
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id, status string) error {
	query := `UPDATE reservations SET status_booking = ?, updated_at = ? WHERE id = ?`
	result, err := db.conn.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReservation removes the row and verifies it is gone, mirroring the
// admin delete that must never report success while the row survives.
func (db *DB) DeleteReservation(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	var leftover string
	err = db.conn.QueryRowContext(ctx, `SELECT id FROM reservations WHERE id = ?`, id).Scan(&leftover)
	if err == nil {
		return ErrDeleteVerification
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to verify reservation delete: %w", err)
	}
	return nil
}

func (db *DB) listReservations(ctx context.Context, query string, args ...interface{}) ([]*models.Reservation, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var r models.Reservation
	var notes sql.NullString
	err := row.Scan(
		&r.ID, &r.GuestID, &r.HotelID, &r.HotelName, &r.Price, &r.TotalPrice, &r.Nights,
		&r.CheckIn, &r.CheckOut, &r.Adults, &r.Children, &notes,
		&r.BookingStatus, &r.CheckInStatus, &r.CheckOutStatus,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Notes = notes.String
	return &r, nil
}
