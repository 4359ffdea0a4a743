package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mihman/internal/models"
)

const hotelColumns = `id, name, city, price, max_guests, category, rating,
                      images, facilities, description, rules, status, created_at, updated_at`

func (db *DB) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	query := `INSERT INTO hotels (
				id, name, city, price, max_guests, category, rating,
				images, facilities, description, rules, status, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		hotel.ID,
		hotel.Name,
		hotel.City,
		hotel.Price,
		hotel.MaxGuests,
		hotel.Category,
		hotel.Rating,
		encodeStrings(hotel.Images),
		encodeStrings(hotel.Facilities),
		hotel.Description,
		hotel.Rules,
		hotel.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	hotel.CreatedAt = now
	hotel.UpdatedAt = now
	return nil
}

func (db *DB) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	hotel, err := scanHotel(db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return hotel, nil
}

func (db *DB) ListHotels(ctx context.Context, filter models.HotelFilter) ([]*models.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE 1=1`
	var args []interface{}

	if filter.City != "" {
		query += ` AND city LIKE ?`
		args = append(args, "%"+filter.City+"%")
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.MinPrice > 0 {
		query += ` AND price >= ?`
		args = append(args, filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query += ` AND price <= ?`
		args = append(args, filter.MaxPrice)
	}
	if filter.MaxGuests > 0 {
		query += ` AND max_guests >= ?`
		args = append(args, filter.MaxGuests)
	}
	if filter.Search != "" {
		query += ` AND (name LIKE ? OR city LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []*models.Hotel
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, hotel)
	}
	return hotels, rows.Err()
}

func (db *DB) UpdateHotel(ctx context.Context, hotel *models.Hotel) error {
	query := `UPDATE hotels SET name = ?, city = ?, price = ?, max_guests = ?,
	                 category = ?, rating = ?, images = ?, facilities = ?,
	                 description = ?, rules = ?, status = ?, updated_at = ?
	          WHERE id = ?`
	result, err := db.conn.ExecContext(ctx, query,
		hotel.Name,
		hotel.City,
		hotel.Price,
		hotel.MaxGuests,
		hotel.Category,
		hotel.Rating,
		encodeStrings(hotel.Images),
		encodeStrings(hotel.Facilities),
		hotel.Description,
		hotel.Rules,
		hotel.Status,
		time.Now(),
		hotel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteHotel(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHotel(row rowScanner) (*models.Hotel, error) {
	var hotel models.Hotel
	var images, facilities, category, description, rules sql.NullString
	err := row.Scan(
		&hotel.ID, &hotel.Name, &hotel.City, &hotel.Price, &hotel.MaxGuests,
		&category, &hotel.Rating, &images, &facilities,
		&description, &rules, &hotel.Status, &hotel.CreatedAt, &hotel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	hotel.Category = category.String
	hotel.Description = description.String
	hotel.Rules = rules.String
	hotel.Images = decodeStrings(images.String)
	hotel.Facilities = decodeStrings(facilities.String)
	return &hotel, nil
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
