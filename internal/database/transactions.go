package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mihman/internal/models"
)

const transactionColumns = `id, guest_id, reservation_id, amount, type, status,
                            description, created_at, processed_at`

func (db *DB) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `INSERT INTO transactions (
				id, guest_id, reservation_id, amount, type, status, description, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		t.ID,
		t.GuestID,
		nullString(t.ReservationID),
		t.Amount,
		t.Type,
		t.Status,
		t.Description,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	t.CreatedAt = now
	return nil
}

func (db *DB) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`
	t, err := scanTransaction(db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

func (db *DB) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`
	return db.listTransactions(ctx, query)
}

func (db *DB) ListTransactionsByGuest(ctx context.Context, guestID string) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
	          WHERE guest_id = ? ORDER BY created_at DESC`
	return db.listTransactions(ctx, query, guestID)
}

func (db *DB) ListTransactionsByReservation(ctx context.Context, reservationID string) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
	          WHERE reservation_id = ? ORDER BY created_at DESC`
	return db.listTransactions(ctx, query, reservationID)
}

func (db *DB) UpdateTransaction(ctx context.Context, id, txType, status string, processedAt *time.Time) error {
	query := `UPDATE transactions SET type = ?, status = ?, processed_at = ? WHERE id = ?`
	result, err := db.conn.ExecContext(ctx, query, txType, status, processedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteTransaction(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTransactionsByReservation removes every transaction of a reservation.
// Deleting zero rows is not an error: the cascade runs before the reservation
// delete regardless of whether payments exist.
func (db *DB) DeleteTransactionsByReservation(ctx context.Context, reservationID string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM transactions WHERE reservation_id = ?`, reservationID)
	if err != nil {
		return fmt.Errorf("failed to delete reservation transactions: %w", err)
	}
	return nil
}

func (db *DB) listTransactions(ctx context.Context, query string, args ...interface{}) ([]*models.Transaction, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var t models.Transaction
	var reservationID, description sql.NullString
	var processedAt sql.NullTime
	err := row.Scan(
		&t.ID, &t.GuestID, &reservationID, &t.Amount, &t.Type, &t.Status,
		&description, &t.CreatedAt, &processedAt,
	)
	if err != nil {
		return nil, err
	}
	t.ReservationID = reservationID.String
	t.Description = description.String
	if processedAt.Valid {
		t.ProcessedAt = &processedAt.Time
	}
	return &t, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
